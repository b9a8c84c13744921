package handlers

import (
	"net/http"
	"strconv"

	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/tasks?assignee_id=...&status=...
func GetTasks(c *gin.Context) {
	var assigneeID int64
	if v := c.Query("assignee_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			RespondError(c, http.StatusBadRequest, "invalid assignee_id", err)
			return
		}
		assigneeID = id
	}

	repo := repositories.TaskRepository{}
	tasks, err := repo.List(assigneeID, c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

type createTaskRequest struct {
	Title      string `json:"title"`
	Notes      string `json:"notes"`
	AssigneeID int64  `json:"assignee_id"`
	LeadID     *int64 `json:"lead_id"`
	BookingID  *int64 `json:"booking_id"`
	DueDate    string `json:"due_date"`
}

// POST /api/tasks
func CreateTask(c *gin.Context) {
	var req createTaskRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if utils.TrimOrEmpty(req.Title) == "" {
		RespondError(c, http.StatusBadRequest, "title is required", nil)
		return
	}
	if req.AssigneeID <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid assignee_id", nil)
		return
	}
	if req.DueDate != "" {
		if _, err := utils.ParseDate(req.DueDate); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid due_date", err)
			return
		}
	}

	task := models.Task{
		Title:      utils.TrimOrEmpty(req.Title),
		Notes:      utils.TrimOrEmpty(req.Notes),
		AssigneeID: req.AssigneeID,
		LeadID:     req.LeadID,
		BookingID:  req.BookingID,
		DueDate:    req.DueDate,
		Status:     domain.TaskOpen,
	}

	repo := repositories.TaskRepository{}
	id, err := repo.Create(task)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	task.ID = id
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

type taskStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/tasks/:id/status
func UpdateTaskStatus(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	var req taskStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	status := domain.TaskStatus(req.Status)
	if status != domain.TaskOpen && status != domain.TaskDone {
		RespondError(c, http.StatusBadRequest, "status must be open or done", nil)
		return
	}

	repo := repositories.TaskRepository{}
	if err := repo.UpdateStatus(id, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task updated"})
}
