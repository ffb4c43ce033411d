package uex

import "strings"

// cents converts a whole-currency-unit upstream price to integer cents.
// Zero and negative values mean the tier is not offered.
func cents(price float64) *int64 {
	if price <= 0 {
		return nil
	}
	c := int64(price * 100)
	return &c
}

// BuildPriceMap builds the fiat price map keyed by lowercased vehicle
// name. Only USD rows are kept; other currencies are ignored here
// (display conversion is a static-rate multiplication in the view
// layer). Multiple rows per ship are not expected; last write wins.
func BuildPriceMap(rows []PriceRow) map[string]Price {
	prices := make(map[string]Price)
	for _, row := range rows {
		if row.Currency != "USD" {
			continue
		}
		key := strings.ToLower(row.VehicleName)
		prices[key] = Price{
			MSRP:          cents(row.Price),
			Warbond:       cents(row.PriceWarbond),
			OnSale:        row.OnSale != 0,
			OnSaleWarbond: row.OnSaleWarbond != 0,
		}
	}
	return prices
}

// BuildAUECMaps builds both aUEC maps in one pass: the best-price map
// keeps the minimum buy price per ship (first seen wins on ties) for
// the summary table, the listings map keeps every terminal in arrival
// order for the detail view.
func BuildAUECMaps(rows []AuecRow) (map[string]Listing, map[string][]Listing) {
	best := make(map[string]Listing)
	listings := make(map[string][]Listing)

	for _, row := range rows {
		key := strings.ToLower(row.VehicleName)

		terminal := row.TerminalName
		if terminal == "" {
			terminal = "Unknown"
		}
		entry := Listing{Terminal: terminal, Price: int64(row.PriceBuy)}

		if existing, ok := best[key]; !ok || entry.Price < existing.Price {
			best[key] = entry
		}

		listings[key] = append(listings[key], entry)
	}

	return best, listings
}
