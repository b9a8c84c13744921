package domain

// PaymentStatus is the booking payment lifecycle. It only moves toward
// StatusFullyPaid as payments accrue; there is no downgrade path.
type PaymentStatus string

const (
	StatusDepositPending PaymentStatus = "deposit_pending"
	StatusDepositPaid    PaymentStatus = "deposit_paid"
	StatusFullyPaid      PaymentStatus = "fully_paid"
	StatusCancelled      PaymentStatus = "cancelled"
)

// rank orders payment statuses for the one-way ratchet. Cancelled sits
// outside the ladder and never ranks.
func (s PaymentStatus) rank() int {
	switch s {
	case StatusDepositPending:
		return 0
	case StatusDepositPaid:
		return 1
	case StatusFullyPaid:
		return 2
	default:
		return -1
	}
}

// AtLeast reports whether s already reached other on the payment ladder.
func (s PaymentStatus) AtLeast(other PaymentStatus) bool {
	return s.rank() >= other.rank()
}

// PaymentKind identifies the installment slot a payment fills.
type PaymentKind string

const (
	PaymentFirst  PaymentKind = "first"
	PaymentSecond PaymentKind = "second"
	PaymentThird  PaymentKind = "third"
)

func ParsePaymentKind(s string) (PaymentKind, bool) {
	switch PaymentKind(s) {
	case PaymentSecond:
		return PaymentSecond, true
	case PaymentThird:
		return PaymentThird, true
	}
	return "", false
}

// LeadStatus tracks a sales lead through the funnel.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQuoted    LeadStatus = "quoted"
	LeadBooked    LeadStatus = "booked"
	LeadLost      LeadStatus = "lost"
)

// TaskStatus is deliberately small; tasks are open until someone closes them.
type TaskStatus string

const (
	TaskOpen TaskStatus = "open"
	TaskDone TaskStatus = "done"
)

// Staff roles. Reports and exports require RoleAdmin or RoleManager.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleAgent   = "agent"
)

// CommissionFilter carries the optional report filters. Each field is
// independently empty-able and they combine with AND at the query.
type CommissionFilter struct {
	DateFrom   string // inclusive, YYYY-MM-DD
	DateTo     string // inclusive, YYYY-MM-DD
	NameSearch string // case-insensitive agent-name substring
}

// BookingFilter narrows booking lists.
type BookingFilter struct {
	TripID        int64
	CustomerID    int64
	PaymentStatus string
}
