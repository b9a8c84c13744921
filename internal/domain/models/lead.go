package models

import "tourops/internal/domain"

// Lead is an unconverted sales contact. Booking lifecycle events move it
// to booked/lost via the lead sync service.
type Lead struct {
	ID             int64             `json:"id"`
	CustomerID     int64             `json:"customer_id"`
	Source         string            `json:"source"`
	Status         domain.LeadStatus `json:"status"`
	Notes          string            `json:"notes"`
	AssignedUserID *int64            `json:"assigned_user_id,omitempty"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}

// Task is a back-office to-do, optionally linked to a lead or booking.
type Task struct {
	ID         int64             `json:"id"`
	Title      string            `json:"title"`
	Notes      string            `json:"notes"`
	AssigneeID int64             `json:"assignee_id"`
	LeadID     *int64            `json:"lead_id,omitempty"`
	BookingID  *int64            `json:"booking_id,omitempty"`
	DueDate    string            `json:"due_date"`
	Status     domain.TaskStatus `json:"status"`
	CreatedAt  string            `json:"created_at"`
}
