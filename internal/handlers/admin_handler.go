package handlers

import (
	"log"
	"net/http"

	"localgov-backend/internal/models"
	"localgov-backend/internal/repository"
	"localgov-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	users        repository.UserRepository
	appointments repository.AppointmentRepository
	documents    repository.DocumentRepository
}

func NewAdminHandler(
	users repository.UserRepository,
	appointments repository.AppointmentRepository,
	documents repository.DocumentRepository,
) *AdminHandler {
	return &AdminHandler{users, appointments, documents}
}

// DashboardStats is the admin overview: bookings by status, citizen count,
// document backlog.
func (h *AdminHandler) DashboardStats(c *gin.Context) {
	statuses := []string{
		models.StatusPending, models.StatusConfirmed, models.StatusCompleted,
		models.StatusCancelled, models.StatusRescheduled,
	}

	byStatus := gin.H{}
	for _, status := range statuses {
		count, err := h.appointments.CountByStatus(status)
		if err != nil {
			log.Printf("Error counting %s appointments: %v", status, err)
			utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to compute stats", nil)
			return
		}
		byStatus[status] = count
	}

	citizens, err := h.users.CountByRole(models.RoleCitizen)
	if err != nil {
		log.Printf("Error counting citizens: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to compute stats", nil)
		return
	}

	pendingDocs, err := h.documents.CountByStatus(models.DocPending)
	if err != nil {
		log.Printf("Error counting pending documents: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to compute stats", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Admin Dashboard", gin.H{
		"appointments_by_status": byStatus,
		"citizens_count":         citizens,
		"pending_documents":      pendingDocs,
	})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page := utils.StringToInt(c.Query("page"), 1)
	limit := utils.StringToInt(c.Query("limit"), 20)

	users, total, err := h.users.List(page, limit)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to fetch users", nil)
		return
	}

	utils.PaginatedResponse(c, "Users", users, len(users), total, page, limit)
}

// SetUserActive toggles the is_active flag that gates login.
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	id := utils.StringToUint64(c.Param("id"))

	var input struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	user, err := h.users.FindByID(id)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "User not found", nil)
		return
	}

	user.IsActive = *input.IsActive
	if err := h.users.Update(user); err != nil {
		log.Printf("Error updating user active flag: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update user", nil)
		return
	}

	message := "User Deactivated"
	if user.IsActive {
		message = "User Activated"
	}
	utils.APIResponse(c, http.StatusOK, true, message, user)
}
