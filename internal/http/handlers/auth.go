package handlers

import (
	"fmt"
	"net/http"

	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/http/middleware"
	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.UserRepository{}
	user, hash, err := repo.GetCredentials(req.Login)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "wrong login or password", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "wrong login or password", nil)
		return
	}

	token, err := middleware.SignToken(user.ID, user.Role)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", fmt.Sprintf("user_id=%d", user.ID))
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

type registerRequest struct {
	Name           string `json:"name"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	CommissionRate string `json:"commission_rate"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if utils.TrimOrEmpty(req.Name) == "" || utils.TrimOrEmpty(req.Email) == "" {
		RespondError(c, http.StatusBadRequest, "name and email are required", nil)
		return
	}
	if len(req.Password) < 8 {
		RespondError(c, http.StatusBadRequest, "password must be at least 8 characters", nil)
		return
	}

	role := req.Role
	switch role {
	case "":
		role = domain.RoleAgent
	case domain.RoleAdmin, domain.RoleManager, domain.RoleAgent:
	default:
		RespondError(c, http.StatusBadRequest, "unknown role", nil)
		return
	}

	rate := decimal.Zero
	if req.CommissionRate != "" {
		var err error
		rate, err = utils.ParseAmount(req.CommissionRate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid commission_rate", err)
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	repo := repositories.UserRepository{}
	user := models.User{
		Name:           req.Name,
		Username:       req.Username,
		Email:          req.Email,
		Phone:          req.Phone,
		Role:           role,
		CommissionRate: rate,
		Status:         "active",
	}
	id, err := repo.Create(user, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	user.ID = id

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", fmt.Sprintf("user_id=%d", id))
	c.JSON(http.StatusCreated, gin.H{"user": user})
}
