// Package viewer joins the catalog with both pricing datasets and the
// loaner map into read-only merged records, and owns the per-session
// sort/filter/favorites state around them.
package viewer

import (
	"strings"

	"github.com/rwxlff/RWX-Ship-Viewer/internal/catalog"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/resolve"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/uex"
)

// normalizeName is the canonical lookup form of a ship name.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MergedShipView is the derived per-ship record handed to the rendering
// layer. It is rebuilt in full on every load and never persisted.
type MergedShipView struct {
	catalog.VehicleRecord

	Price       *uex.Price    `json:"price,omitempty"`
	BestListing *uex.Listing  `json:"best_listing,omitempty"`
	Listings    []uex.Listing `json:"listings,omitempty"`
	Loaners     []string      `json:"loaners,omitempty"`
	Favorite    bool          `json:"favorite"`
	Display     *Display      `json:"display,omitempty"`

	// Savings is msrp - warbond in cents, set only when both tiers
	// exist and MSRP strictly exceeds the warbond price.
	Savings *int64 `json:"savings,omitempty"`
}

// auecPlausible applies the validity heuristic for in-game listings:
// an aUEC price is implausibly cheap (stale or erroneous) when the fiat
// MSRP in dollars times 1000 exceeds it.
func auecPlausible(price *uex.Price, auec int64) bool {
	if price == nil || price.MSRP == nil {
		return true
	}
	msrpDollars := float64(*price.MSRP) / 100
	return msrpDollars*1000 <= float64(auec)
}

// BuildView merges one catalog entry per ship with the resolved price,
// listing, and loaner data.
func BuildView(
	ships []catalog.VehicleRecord,
	fiat map[string]uex.Price,
	bestAUEC map[string]uex.Listing,
	auecListings map[string][]uex.Listing,
	loaners map[string][]string,
	favorites map[string]bool,
) []MergedShipView {
	views := make([]MergedShipView, 0, len(ships))

	for _, ship := range ships {
		view := MergedShipView{
			VehicleRecord: ship,
			Favorite:      favorites[ship.Name],
		}

		if price, ok := resolve.Lookup(fiat, ship.Name); ok {
			p := price
			view.Price = &p

			if p.MSRP != nil && p.Warbond != nil && *p.MSRP > *p.Warbond {
				savings := *p.MSRP - *p.Warbond
				view.Savings = &savings
			}
		}

		if best, ok := resolve.Lookup(bestAUEC, ship.Name); ok && auecPlausible(view.Price, best.Price) {
			b := best
			view.BestListing = &b
			if listings, ok := resolve.Lookup(auecListings, ship.Name); ok {
				view.Listings = listings
			}
		}

		if subs, ok := resolve.Lookup(loaners, ship.Name); ok {
			view.Loaners = subs
		}

		views = append(views, view)
	}

	return views
}
