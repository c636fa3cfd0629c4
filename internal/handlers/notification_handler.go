package handlers

import (
	"log"
	"net/http"
	"time"

	"localgov-backend/internal/repository"
	"localgov-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications repository.NotificationRepository
}

func NewNotificationHandler(notifications repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications}
}

// List returns the citizen's notifications plus their unread count.
// ?unread=true filters to unread only.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.GetUint64("userID")
	unreadOnly := c.Query("unread") == "true"
	page := utils.StringToInt(c.Query("page"), 1)
	limit := utils.StringToInt(c.Query("limit"), 10)

	notifications, total, err := h.notifications.ListByUser(userID, unreadOnly, page, limit)
	if err != nil {
		log.Printf("Error listing notifications: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to fetch notifications", nil)
		return
	}

	unread, err := h.notifications.CountUnread(userID)
	if err != nil {
		log.Printf("Error counting unread: %v", err)
	}

	utils.PaginatedResponse(c, "Notifications", gin.H{
		"unread_count":  unread,
		"notifications": notifications,
	}, len(notifications), total, page, limit)
}

// MarkRead flips one notification to read and stamps read_at.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetUint64("userID")
	id := utils.StringToUint64(c.Param("id"))

	notification, err := h.notifications.FindByIDAndUser(id, userID)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Notification not found", nil)
		return
	}

	if !notification.IsRead {
		now := time.Now()
		notification.IsRead = true
		notification.ReadAt = &now
		if err := h.notifications.Update(notification); err != nil {
			log.Printf("Error marking notification read: %v", err)
			utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update notification", nil)
			return
		}
	}

	utils.APIResponse(c, http.StatusOK, true, "Notification Read", notification)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetUint64("userID")

	if err := h.notifications.MarkAllRead(userID); err != nil {
		log.Printf("Error marking all read: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update notifications", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "All Notifications Read", nil)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID := c.GetUint64("userID")
	id := utils.StringToUint64(c.Param("id"))

	if _, err := h.notifications.FindByIDAndUser(id, userID); err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Notification not found", nil)
		return
	}

	if err := h.notifications.Delete(id, userID); err != nil {
		log.Printf("Error deleting notification: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to delete notification", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Notification Deleted", nil)
}
