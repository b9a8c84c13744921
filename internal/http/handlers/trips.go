package handlers

import (
	"net/http"

	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GET /api/trips
func GetTrips(c *gin.Context) {
	repo := repositories.TripRepository{}
	trips, err := repo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GET /api/trips/:id
func GetTripByID(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	repo := repositories.TripRepository{}
	trip, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

type tripRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	BasePrice string `json:"base_price"`
	Capacity  int    `json:"capacity"`

	SingleSupplementPrice string `json:"single_supplement_price"`
	ExtraBedPrice         string `json:"extra_bed_price"`
	SeatPrice             string `json:"seat_price"`
	BagPrice              string `json:"bag_price"`
}

func (r tripRequest) toModel() (models.Trip, string) {
	if utils.TrimOrEmpty(r.Code) == "" || utils.TrimOrEmpty(r.Name) == "" {
		return models.Trip{}, "code and name are required"
	}
	if _, err := utils.ParseDate(r.StartDate); err != nil {
		return models.Trip{}, "invalid start_date"
	}
	if _, err := utils.ParseDate(r.EndDate); err != nil {
		return models.Trip{}, "invalid end_date"
	}
	if r.Capacity <= 0 {
		return models.Trip{}, "capacity must be positive"
	}

	t := models.Trip{
		Code:      utils.TrimOrEmpty(r.Code),
		Name:      utils.TrimOrEmpty(r.Name),
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Capacity:  r.Capacity,
	}

	fields := []struct {
		raw  string
		dst  *decimal.Decimal
		name string
	}{
		{r.BasePrice, &t.BasePrice, "base_price"},
		{r.SingleSupplementPrice, &t.SingleSupplementPrice, "single_supplement_price"},
		{r.ExtraBedPrice, &t.ExtraBedPrice, "extra_bed_price"},
		{r.SeatPrice, &t.SeatPrice, "seat_price"},
		{r.BagPrice, &t.BagPrice, "bag_price"},
	}
	for _, f := range fields {
		if f.raw == "" {
			*f.dst = decimal.Zero
			continue
		}
		d, err := utils.ParseAmount(f.raw)
		if err != nil || d.IsNegative() {
			return models.Trip{}, "invalid " + f.name
		}
		*f.dst = d
	}
	if t.BasePrice.IsZero() {
		return models.Trip{}, "base_price is required"
	}
	return t, ""
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, msg := req.toModel()
	if msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	repo := repositories.TripRepository{}
	id, err := repo.Create(trip)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	trip.ID = id
	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}

	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, msg := req.toModel()
	if msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}
	trip.ID = id

	repo := repositories.TripRepository{}
	if err := repo.Update(trip); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}
