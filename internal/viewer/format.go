package viewer

import (
	"fmt"

	"github.com/rwxlff/RWX-Ship-Viewer/internal/uex"
)

// currencyRate is a static display conversion from USD. The upstream
// dataset is USD-only; conversion happens at render time.
type currencyRate struct {
	rate   float64
	symbol string
	suffix string
}

var currencyRates = map[string]currencyRate{
	"USD": {1, "$", "USD"},
	"EUR": {0.92, "€", "EUR"},
	"GBP": {0.79, "£", "GBP"},
}

// FormatPrice renders a cent amount in the selected display currency,
// or "-" when the price is absent. Unknown currencies fall back to USD.
func FormatPrice(cents *int64, currency string) string {
	if cents == nil {
		return "-"
	}
	curr, ok := currencyRates[currency]
	if !ok {
		curr = currencyRates["USD"]
	}
	converted := float64(*cents) / 100 * curr.rate
	return fmt.Sprintf("%s%.2f %s", curr.symbol, converted, curr.suffix)
}

// Display carries the render-ready strings for one merged record in the
// selected display currency. Absent values render as "-".
type Display struct {
	MSRP         string `json:"msrp"`
	Warbond      string `json:"warbond"`
	Savings      string `json:"savings"`
	BestAUEC     string `json:"best_auec"`
	BestTerminal string `json:"best_terminal,omitempty"`
}

// RenderDisplay builds the display strings for a merged record.
func RenderDisplay(v *MergedShipView, currency string) *Display {
	d := &Display{
		MSRP:     FormatPrice(priceMSRP(v), currency),
		Warbond:  FormatPrice(priceWarbond(v), currency),
		Savings:  FormatPrice(v.Savings, currency),
		BestAUEC: "-",
	}
	if v.BestListing != nil {
		d.BestAUEC = uex.FormatAUECPrice(v.BestListing.Price)
		d.BestTerminal = uex.FormatTerminalName(v.BestListing.Terminal)
	}
	return d
}
