package models

// Customer keeps both the local-script and romanized name pairs; display
// logic prefers the local pair and falls back to the romanized one.
type Customer struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FirstNameEn string `json:"first_name_en"`
	LastNameEn  string `json:"last_name_en"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	CreatedAt   string `json:"created_at"`
}

// Passport is a travel document on file for a customer.
type Passport struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	Number     string `json:"number"`
	ExpiryDate string `json:"expiry_date"`
}
