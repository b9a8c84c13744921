package models

import "github.com/shopspring/decimal"

// User is a staff account. CommissionRate is the flat per-booking amount
// owed when a booking the user is responsible for becomes fully paid.
type User struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Role           string          `json:"role"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Status         string          `json:"status"`
}
