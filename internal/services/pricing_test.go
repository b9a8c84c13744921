package services

import (
	"testing"

	"tourops/internal/domain"
	"tourops/internal/domain/models"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestTotalPayable_FlagsGateExtras(t *testing.T) {
	b := models.Booking{
		TripBasePrice:         mustDecimal(t, "2500.00"),
		SingleSupplement:      false,
		SingleSupplementPrice: mustDecimal(t, "400.00"),
		ExtraBed:              false,
		ExtraBedPrice:         mustDecimal(t, "150.00"),
	}

	if got := TotalPayable(b); !got.Equal(mustDecimal(t, "2500.00")) {
		t.Fatalf("extras added despite flags off: got %s", got)
	}

	b.SingleSupplement = true
	b.ExtraBed = true
	if got := TotalPayable(b); !got.Equal(mustDecimal(t, "3050.00")) {
		t.Fatalf("flagged extras not added: got %s", got)
	}
}

func TestTotalPayable_SurchargesAndDiscount(t *testing.T) {
	b := models.Booking{
		TripBasePrice: mustDecimal(t, "1000.00"),
		SeatSurcharge: mustDecimal(t, "120.50"),
		BagSurcharge:  mustDecimal(t, "30.25"),
		Discount:      mustDecimal(t, "50.75"),
	}

	if got := TotalPayable(b); !got.Equal(mustDecimal(t, "1100.00")) {
		t.Fatalf("wrong total: got %s want 1100.00", got)
	}
}

func TestTotalPayable_NegativeNotFloored(t *testing.T) {
	b := models.Booking{
		TripBasePrice: mustDecimal(t, "100.00"),
		Discount:      mustDecimal(t, "250.00"),
	}

	if got := TotalPayable(b); !got.Equal(mustDecimal(t, "-150.00")) {
		t.Fatalf("negative total should pass through, got %s", got)
	}
}

func TestNextPaymentStatus_Ratchet(t *testing.T) {
	cases := []struct {
		name    string
		current domain.PaymentStatus
		paid    string
		total   string
		want    domain.PaymentStatus
	}{
		{"nothing paid stays pending", domain.StatusDepositPending, "0", "1000", domain.StatusDepositPending},
		{"partial moves to deposit paid", domain.StatusDepositPending, "300", "1000", domain.StatusDepositPaid},
		{"exact total fully paid", domain.StatusDepositPaid, "1000", "1000", domain.StatusFullyPaid},
		{"overpay fully paid", domain.StatusDepositPaid, "1200", "1000", domain.StatusFullyPaid},
		{"never downgrades", domain.StatusFullyPaid, "300", "1000", domain.StatusFullyPaid},
		{"cancelled never moves", domain.StatusCancelled, "1000", "1000", domain.StatusCancelled},
		{"zero total with payment is fully paid", domain.StatusDepositPending, "100", "0", domain.StatusFullyPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextPaymentStatus(tc.current, mustDecimal(t, tc.paid), mustDecimal(t, tc.total))
			if got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}
