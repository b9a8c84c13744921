package services

import (
	"testing"

	"tourops/internal/domain"
	"tourops/internal/repositories"
)

func TestGroupByAgent_DistinctTripAndBookingCounts(t *testing.T) {
	rows := []repositories.CommissionRow{
		{ID: 1, AgentID: 2, AgentName: "Mira", BookingID: 10, TripID: 100, Amount: mustDecimal(t, "50.00")},
		{ID: 2, AgentID: 2, AgentName: "Mira", BookingID: 11, TripID: 100, Amount: mustDecimal(t, "50.00")},
		{ID: 3, AgentID: 2, AgentName: "Mira", BookingID: 12, TripID: 200, Amount: mustDecimal(t, "75.50")},
	}

	out := GroupByAgent(rows)
	if len(out) != 1 {
		t.Fatalf("expected one agent, got %d", len(out))
	}
	got := out[0]
	if got.TotalTrips != 2 {
		t.Fatalf("trips must be distinct: got %d want 2", got.TotalTrips)
	}
	if got.TotalPeople != 3 {
		t.Fatalf("bookings must be distinct: got %d want 3", got.TotalPeople)
	}
	if !got.TotalAmount.Equal(mustDecimal(t, "175.50")) {
		t.Fatalf("wrong sum: got %s want 175.50", got.TotalAmount)
	}
}

func TestGroupByAgent_SortsByNameCaseInsensitive(t *testing.T) {
	rows := []repositories.CommissionRow{
		{ID: 1, AgentID: 1, AgentName: "zoe", BookingID: 1, TripID: 1, Amount: mustDecimal(t, "10")},
		{ID: 2, AgentID: 2, AgentName: "Adam", BookingID: 2, TripID: 1, Amount: mustDecimal(t, "10")},
		{ID: 3, AgentID: 3, AgentName: "beth", BookingID: 3, TripID: 1, Amount: mustDecimal(t, "10")},
	}

	out := GroupByAgent(rows)
	names := []string{}
	for _, a := range out {
		names = append(names, a.AgentName)
	}
	want := []string{"Adam", "beth", "zoe"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("wrong order: got %v want %v", names, want)
		}
	}
}

func TestGroupByAgent_EmptyInput(t *testing.T) {
	out := GroupByAgent(nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}

func TestGroupByAgent_ZeroTripIDNotCounted(t *testing.T) {
	rows := []repositories.CommissionRow{
		{ID: 1, AgentID: 4, AgentName: "Nia", BookingID: 20, TripID: 0, Amount: mustDecimal(t, "40")},
	}

	out := GroupByAgent(rows)
	if len(out) != 1 || out[0].TotalTrips != 0 {
		t.Fatalf("orphaned booking must not count a trip: %#v", out)
	}
	if out[0].TotalPeople != 1 {
		t.Fatalf("booking still counts a person: %#v", out)
	}
}

func TestDetailForAgent_RejectsBadAgentID(t *testing.T) {
	svc := ReportsService{}
	_, err := svc.DetailForAgent(0, domain.CommissionFilter{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
