package services

import (
	"tourops/internal/domain"
	"tourops/internal/domain/models"

	"github.com/shopspring/decimal"
)

// TotalPayable derives the booking's total from the trip base price plus
// extras minus discount. Single supplement and extra bed only count when
// their flag is on; seat and bag surcharges are plain amounts (zero when
// unused). The result is not floored at zero: a negative total means the
// booking data is wrong and callers log it rather than hide it.
func TotalPayable(b models.Booking) decimal.Decimal {
	total := b.TripBasePrice
	if b.SingleSupplement {
		total = total.Add(b.SingleSupplementPrice)
	}
	if b.ExtraBed {
		total = total.Add(b.ExtraBedPrice)
	}
	total = total.Add(b.SeatSurcharge)
	total = total.Add(b.BagSurcharge)
	return total.Sub(b.Discount)
}

// NextPaymentStatus is the one-way ratchet: paid >= total -> fully paid,
// partial -> deposit paid, nothing paid -> unchanged. A status already
// higher than the computed one is kept, and cancelled never moves.
func NextPaymentStatus(current domain.PaymentStatus, paid, total decimal.Decimal) domain.PaymentStatus {
	if current == domain.StatusCancelled {
		return current
	}

	var next domain.PaymentStatus
	switch {
	case paid.GreaterThanOrEqual(total):
		next = domain.StatusFullyPaid
	case paid.IsPositive():
		next = domain.StatusDepositPaid
	default:
		return current
	}

	if current.AtLeast(next) {
		return current
	}
	return next
}
