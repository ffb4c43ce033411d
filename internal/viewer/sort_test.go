package viewer

import (
	"testing"

	"github.com/rwxlff/RWX-Ship-Viewer/internal/catalog"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/uex"
)

func viewWithPrice(name string, msrp, warbond int64) MergedShipView {
	v := MergedShipView{VehicleRecord: catalog.VehicleRecord{Name: name}}
	if msrp > 0 || warbond > 0 {
		p := fiatPrice(msrp, warbond)
		v.Price = &p
		if p.MSRP != nil && p.Warbond != nil && *p.MSRP > *p.Warbond {
			s := *p.MSRP - *p.Warbond
			v.Savings = &s
		}
	}
	return v
}

func names(views []MergedShipView) []string {
	out := make([]string, len(views))
	for i := range views {
		out[i] = views[i].Name
	}
	return out
}

func TestSortBySavingsDescending(t *testing.T) {
	views := []MergedShipView{
		viewWithPrice("NoSavings", 5000, 5000),
		viewWithPrice("BigSavings", 10000, 8000),
	}

	sorted := SortBy(views, ColSavings, false)

	got := names(sorted)
	if got[0] != "BigSavings" || got[1] != "NoSavings" {
		t.Errorf("savings desc order = %v", got)
	}
}

func TestSortMissingNumericsAreZero(t *testing.T) {
	views := []MergedShipView{
		viewWithPrice("Priced", 2500, 0),
		viewWithPrice("Unpriced", 0, 0),
	}

	sorted := SortBy(views, ColMSRP, true)
	if got := names(sorted); got[0] != "Unpriced" {
		t.Errorf("ascending msrp should put missing (0) first, got %v", got)
	}
}

func TestSortByNameIsCaseInsensitive(t *testing.T) {
	views := []MergedShipView{
		viewWithPrice("aurora MR", 0, 0),
		viewWithPrice("Avenger Titan", 0, 0),
		viewWithPrice("100i", 0, 0),
	}

	sorted := SortBy(views, ColName, true)
	got := names(sorted)
	if got[0] != "100i" || got[1] != "aurora MR" || got[2] != "Avenger Titan" {
		t.Errorf("name order = %v", got)
	}
}

func TestSortIsStableOnTies(t *testing.T) {
	views := []MergedShipView{
		viewWithPrice("First", 1000, 0),
		viewWithPrice("Second", 1000, 0),
		viewWithPrice("Third", 1000, 0),
	}

	sorted := SortBy(views, ColMSRP, true)
	got := names(sorted)
	if got[0] != "First" || got[1] != "Second" || got[2] != "Third" {
		t.Errorf("ties must preserve input order, got %v", got)
	}
}

func TestSortByAUECUsesSuppressedValue(t *testing.T) {
	withListing := MergedShipView{
		VehicleRecord: catalog.VehicleRecord{Name: "Listed"},
		BestListing:   &uex.Listing{Terminal: "New Deal", Price: 250000},
	}
	withoutListing := MergedShipView{VehicleRecord: catalog.VehicleRecord{Name: "Suppressed"}}

	sorted := SortBy([]MergedShipView{withListing, withoutListing}, ColAUEC, true)
	if got := names(sorted); got[0] != "Suppressed" {
		t.Errorf("suppressed listing should sort as zero, got %v", got)
	}
}

func TestSortUnknownColumnKeepsOrder(t *testing.T) {
	views := []MergedShipView{viewWithPrice("B", 0, 0), viewWithPrice("A", 0, 0)}
	sorted := SortBy(views, Column("bogus"), true)
	if got := names(sorted); got[0] != "B" {
		t.Errorf("unknown column should not reorder, got %v", got)
	}
}
