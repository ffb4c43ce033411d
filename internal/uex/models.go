package uex

// PriceRow is one raw fiat pricing record from the upstream API.
// Price fields are denominated in whole currency units (dollars).
type PriceRow struct {
	VehicleName   string  `json:"vehicle_name"`
	Currency      string  `json:"currency"`
	Price         float64 `json:"price"`
	PriceWarbond  float64 `json:"price_warbond"`
	OnSale        int     `json:"on_sale"`
	OnSaleWarbond int     `json:"on_sale_warbond"`
}

// AuecRow is one raw in-game purchase listing: a buy price at one
// physical terminal.
type AuecRow struct {
	VehicleName  string  `json:"vehicle_name"`
	TerminalName string  `json:"terminal_name"`
	PriceBuy     float64 `json:"price_buy"`
}

// Price is the resolved fiat price set for a ship, in integer cents.
// A nil field means the tier is not offered.
type Price struct {
	MSRP          *int64 `json:"msrp"`
	Warbond       *int64 `json:"warbond"`
	OnSale        bool   `json:"on_sale"`
	OnSaleWarbond bool   `json:"on_sale_warbond"`
}

// Listing is one aUEC purchase location for a ship.
type Listing struct {
	Terminal string `json:"terminal"`
	Price    int64  `json:"price"`
}
