package handlers

import (
	"net/http"

	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/customers?name=...
func GetCustomers(c *gin.Context) {
	repo := repositories.CustomerRepository{}
	customers, err := repo.List(c.Query("name"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// GET /api/customers/:id
func GetCustomerByID(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	repo := repositories.CustomerRepository{}
	customer, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

type customerRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FirstNameEn string `json:"first_name_en"`
	LastNameEn  string `json:"last_name_en"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

func (r customerRequest) toModel() (models.Customer, string) {
	m := models.Customer{
		FirstName:   utils.TrimOrEmpty(r.FirstName),
		LastName:    utils.TrimOrEmpty(r.LastName),
		FirstNameEn: utils.TrimOrEmpty(r.FirstNameEn),
		LastNameEn:  utils.TrimOrEmpty(r.LastNameEn),
		Phone:       utils.TrimOrEmpty(r.Phone),
		Email:       utils.TrimOrEmpty(r.Email),
	}
	if utils.DisplayName(m.FirstName, m.LastName, m.FirstNameEn, m.LastNameEn) == "" {
		return models.Customer{}, "customer name is required"
	}
	return m, ""
}

// POST /api/customers
func CreateCustomer(c *gin.Context) {
	var req customerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	customer, msg := req.toModel()
	if msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	repo := repositories.CustomerRepository{}
	id, err := repo.Create(customer)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	customer.ID = id
	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

// PUT /api/customers/:id
func UpdateCustomer(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	var req customerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	customer, msg := req.toModel()
	if msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}
	customer.ID = id

	repo := repositories.CustomerRepository{}
	if err := repo.Update(customer); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// GET /api/customers/:id/passports
func GetCustomerPassports(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	repo := repositories.CustomerRepository{}
	passports, err := repo.ListPassports(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"passports": passports})
}

type passportRequest struct {
	Number     string `json:"number"`
	ExpiryDate string `json:"expiry_date"`
}

// POST /api/customers/:id/passports
func AddCustomerPassport(c *gin.Context) {
	customerID, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	var req passportRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if utils.TrimOrEmpty(req.Number) == "" {
		RespondError(c, http.StatusBadRequest, "passport number is required", nil)
		return
	}
	if _, err := utils.ParseDate(req.ExpiryDate); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid expiry_date", err)
		return
	}

	repo := repositories.CustomerRepository{}
	passport := models.Passport{
		CustomerID: customerID,
		Number:     utils.TrimOrEmpty(req.Number),
		ExpiryDate: req.ExpiryDate,
	}
	id, err := repo.AddPassport(passport)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	passport.ID = id
	c.JSON(http.StatusCreated, gin.H{"passport": passport})
}
