package models

import (
	"tourops/internal/domain"

	"github.com/shopspring/decimal"
)

// Booking is one customer's confirmed slot on one trip, with its own
// pricing and payment state. Bookings are never hard-deleted; cancellation
// is a status value.
type Booking struct {
	ID         int64  `json:"id"`
	TripID     int64  `json:"trip_id"`
	CustomerID int64  `json:"customer_id"`
	PassportID *int64 `json:"passport_id,omitempty"`

	SingleSupplement      bool            `json:"single_supplement"`
	SingleSupplementPrice decimal.Decimal `json:"single_supplement_price"`
	ExtraBed              bool            `json:"extra_bed"`
	ExtraBedPrice         decimal.Decimal `json:"extra_bed_price"`
	SeatSurcharge         decimal.Decimal `json:"seat_surcharge"`
	BagSurcharge          decimal.Decimal `json:"bag_surcharge"`
	Discount              decimal.Decimal `json:"discount"`

	PaymentStatus   domain.PaymentStatus `json:"payment_status"`
	FirstPaymentID  *int64               `json:"first_payment_id,omitempty"`
	SecondPaymentID *int64               `json:"second_payment_id,omitempty"`
	ThirdPaymentID  *int64               `json:"third_payment_id,omitempty"`

	SalesUserID int64  `json:"sales_user_id"`
	AgentID     *int64 `json:"agent_id,omitempty"`

	TripBasePrice decimal.Decimal `json:"trip_base_price"`
	CreatedAt     string          `json:"created_at"`
}

// ResponsibleAgentID returns the agent owed commission for this booking:
// the assisting agent when set, otherwise the sales user.
func (b Booking) ResponsibleAgentID() int64 {
	if b.AgentID != nil && *b.AgentID > 0 {
		return *b.AgentID
	}
	return b.SalesUserID
}

// BookingUpdate supports PATCH-style updates via key presence.
type BookingUpdate struct {
	PassportID *int64
	Discount   *decimal.Decimal
	AgentID    *int64
}
