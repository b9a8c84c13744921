package handlers

import (
	"net/http"

	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/users
func GetUsers(c *gin.Context) {
	repo := repositories.UserRepository{}
	users, err := repo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	repo := repositories.UserRepository{}
	user, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type commissionRateRequest struct {
	CommissionRate string `json:"commission_rate"`
}

// PUT /api/users/:id/commission-rate
func UpdateUserCommissionRate(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}

	var req commissionRateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	rate, err := utils.ParseAmount(req.CommissionRate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid commission_rate", err)
		return
	}
	if rate.IsNegative() {
		RespondError(c, http.StatusBadRequest, "commission_rate must not be negative", nil)
		return
	}

	repo := repositories.UserRepository{}
	if err := repo.UpdateCommissionRate(id, rate); err != nil {
		RespondDomainError(c, err)
		return
	}
	user, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
