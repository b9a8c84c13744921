package models

import "github.com/shopspring/decimal"

// Trip is a scheduled tour package with a base price and capacity. The
// surcharge prices are the defaults copied onto a booking at creation.
type Trip struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	BasePrice decimal.Decimal `json:"base_price"`
	Capacity  int             `json:"capacity"`

	SingleSupplementPrice decimal.Decimal `json:"single_supplement_price"`
	ExtraBedPrice         decimal.Decimal `json:"extra_bed_price"`
	SeatPrice             decimal.Decimal `json:"seat_price"`
	BagPrice              decimal.Decimal `json:"bag_price"`

	CreatedAt string `json:"created_at"`
}

// TripSummary is the slim shape embedded in commission detail rows.
type TripSummary struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
