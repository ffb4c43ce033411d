package viewer

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Column names a sortable table column.
type Column string

const (
	ColName         Column = "name"
	ColManufacturer Column = "manufacturer"
	ColType         Column = "type"
	ColStatus       Column = "status"
	ColCargo        Column = "cargo"
	ColCrew         Column = "crew"
	ColAUEC         Column = "auec"
	ColMSRP         Column = "msrp"
	ColWarbond      Column = "warbond"
	ColSavings      Column = "savings"
)

// ValidColumn reports whether c is a sortable column.
func ValidColumn(c Column) bool {
	switch c {
	case ColName, ColManufacturer, ColType, ColStatus, ColCargo,
		ColCrew, ColAUEC, ColMSRP, ColWarbond, ColSavings:
		return true
	}
	return false
}

var collator = collate.New(language.English, collate.IgnoreCase)

// SortBy returns a sorted copy of views. String columns compare with
// locale-aware collation, numeric columns treat missing values as zero.
// The sort is stable, so the input order breaks ties.
func SortBy(views []MergedShipView, column Column, ascending bool) []MergedShipView {
	sorted := make([]MergedShipView, len(views))
	copy(sorted, views)

	var less func(a, b *MergedShipView) bool

	switch column {
	case ColName:
		less = stringLess(func(v *MergedShipView) string { return v.Name })
	case ColManufacturer:
		less = stringLess(func(v *MergedShipView) string { return v.Manufacturer.Name })
	case ColType:
		less = stringLess(func(v *MergedShipView) string { return v.Type })
	case ColStatus:
		less = stringLess(func(v *MergedShipView) string { return v.ProductionStatus })
	case ColCargo:
		less = numericLess(func(v *MergedShipView) float64 { return float64(v.CargoCapacity) })
	case ColCrew:
		less = numericLess(func(v *MergedShipView) float64 { return float64(v.MaxCrew) })
	case ColAUEC:
		less = numericLess(func(v *MergedShipView) float64 {
			if v.BestListing == nil {
				return 0
			}
			return float64(v.BestListing.Price)
		})
	case ColMSRP:
		less = numericLess(func(v *MergedShipView) float64 { return centsOrZero(priceMSRP(v)) })
	case ColWarbond:
		less = numericLess(func(v *MergedShipView) float64 { return centsOrZero(priceWarbond(v)) })
	case ColSavings:
		less = numericLess(func(v *MergedShipView) float64 { return centsOrZero(v.Savings) })
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return less(&sorted[i], &sorted[j])
		}
		return less(&sorted[j], &sorted[i])
	})

	return sorted
}

func stringLess(key func(*MergedShipView) string) func(a, b *MergedShipView) bool {
	return func(a, b *MergedShipView) bool {
		return collator.CompareString(key(a), key(b)) < 0
	}
}

func numericLess(key func(*MergedShipView) float64) func(a, b *MergedShipView) bool {
	return func(a, b *MergedShipView) bool {
		return key(a) < key(b)
	}
}

func priceMSRP(v *MergedShipView) *int64 {
	if v.Price == nil {
		return nil
	}
	return v.Price.MSRP
}

func priceWarbond(v *MergedShipView) *int64 {
	if v.Price == nil {
		return nil
	}
	return v.Price.Warbond
}

func centsOrZero(c *int64) float64 {
	if c == nil {
		return 0
	}
	return float64(*c)
}
