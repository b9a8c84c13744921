package handlers

import (
	"net/http"

	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/leads?status=...
func GetLeads(c *gin.Context) {
	repo := repositories.LeadRepository{}
	leads, err := repo.List(c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

// GET /api/leads/:id
func GetLeadByID(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	repo := repositories.LeadRepository{}
	lead, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

type createLeadRequest struct {
	CustomerID     int64  `json:"customer_id"`
	Source         string `json:"source"`
	Notes          string `json:"notes"`
	AssignedUserID *int64 `json:"assigned_user_id"`
}

// POST /api/leads
func CreateLead(c *gin.Context) {
	var req createLeadRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.CustomerID <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid customer_id", nil)
		return
	}

	lead := models.Lead{
		CustomerID:     req.CustomerID,
		Source:         utils.TrimOrEmpty(req.Source),
		Status:         domain.LeadNew,
		Notes:          utils.TrimOrEmpty(req.Notes),
		AssignedUserID: req.AssignedUserID,
	}

	repo := repositories.LeadRepository{}
	id, err := repo.Create(lead)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	lead.ID = id
	c.JSON(http.StatusCreated, gin.H{"lead": lead})
}

type leadStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/leads/:id/status moves the lead manually through the funnel.
// booked and lost are set by the booking lifecycle, not here.
func UpdateLeadStatus(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	var req leadStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	status := domain.LeadStatus(req.Status)
	switch status {
	case domain.LeadNew, domain.LeadContacted, domain.LeadQuoted:
	default:
		RespondError(c, http.StatusBadRequest, "status must be new, contacted or quoted", nil)
		return
	}

	repo := repositories.LeadRepository{}
	if err := repo.UpdateStatus(id, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	lead, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

type leadNotesRequest struct {
	Notes string `json:"notes"`
}

// PUT /api/leads/:id/notes
func UpdateLeadNotes(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	var req leadNotesRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.LeadRepository{}
	if err := repo.UpdateNotes(id, req.Notes); err != nil {
		RespondDomainError(c, err)
		return
	}
	lead, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": lead})
}
