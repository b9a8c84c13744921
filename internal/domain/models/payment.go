package models

import (
	"tourops/internal/domain"

	"github.com/shopspring/decimal"
)

// Payment is a single monetary payment event against a booking. Immutable
// once written.
type Payment struct {
	ID        int64              `json:"id"`
	BookingID int64              `json:"booking_id"`
	Kind      domain.PaymentKind `json:"kind"`
	Amount    decimal.Decimal    `json:"amount"`
	ProofFile string             `json:"proof_file,omitempty"`
	CreatedAt string             `json:"created_at"`
}

// Commission is the persisted, per-booking compensation record for the
// responsible agent, created once the booking is fully paid. The table
// carries UNIQUE (agent_id, booking_id).
type Commission struct {
	ID        int64           `json:"id"`
	AgentID   int64           `json:"agent_id"`
	BookingID int64           `json:"booking_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt string          `json:"created_at"`
}
