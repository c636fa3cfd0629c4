package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"localgov-backend/internal/handlers"
	"localgov-backend/internal/models"
	"localgov-backend/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListNotifications(t *testing.T) {
	notifications := new(mocks.MockNotificationRepository)
	rows := []models.Notification{
		{ID: 1, UserID: 1, Title: "Appointment Booked", Type: models.NotifAppointment},
		{ID: 2, UserID: 1, Title: "Appointment Tomorrow", Type: models.NotifAppointment, IsRead: true},
	}
	notifications.On("ListByUser", uint64(1), false, 1, 10).Return(rows, int64(2), nil)
	notifications.On("CountUnread", uint64(1)).Return(int64(1), nil)

	handler := handlers.NewNotificationHandler(notifications)
	router := setupTestRouter()
	router.Use(asUser(1))
	router.GET("/notifications", handler.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
		Data  struct {
			UnreadCount   int64                 `json:"unread_count"`
			Notifications []models.Notification `json:"notifications"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, int64(1), resp.Data.UnreadCount)
	assert.Len(t, resp.Data.Notifications, 2)
}

func TestMarkNotificationRead(t *testing.T) {
	t.Run("stamps read_at", func(t *testing.T) {
		notifications := new(mocks.MockNotificationRepository)
		notification := &models.Notification{ID: 1, UserID: 1, Title: "Appointment Booked"}
		notifications.On("FindByIDAndUser", uint64(1), uint64(1)).Return(notification, nil)
		notifications.On("Update", mock.AnythingOfType("*models.Notification")).Return(nil)

		handler := handlers.NewNotificationHandler(notifications)
		router := setupTestRouter()
		router.Use(asUser(1))
		router.PUT("/notifications/:id/read", handler.MarkRead)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/notifications/1/read", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, notification.IsRead)
		assert.NotNil(t, notification.ReadAt)
	})

	t.Run("already read is a no-op", func(t *testing.T) {
		notifications := new(mocks.MockNotificationRepository)
		notification := &models.Notification{ID: 1, UserID: 1, IsRead: true}
		notifications.On("FindByIDAndUser", uint64(1), uint64(1)).Return(notification, nil)

		handler := handlers.NewNotificationHandler(notifications)
		router := setupTestRouter()
		router.Use(asUser(1))
		router.PUT("/notifications/:id/read", handler.MarkRead)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/notifications/1/read", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		notifications.AssertNotCalled(t, "Update", mock.Anything)
	})
}

func TestMarkAllNotificationsRead(t *testing.T) {
	notifications := new(mocks.MockNotificationRepository)
	notifications.On("MarkAllRead", uint64(1)).Return(nil)

	handler := handlers.NewNotificationHandler(notifications)
	router := setupTestRouter()
	router.Use(asUser(1))
	router.PUT("/notifications/read-all", handler.MarkAllRead)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/notifications/read-all", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	notifications.AssertExpectations(t)
}

func TestDeleteNotification(t *testing.T) {
	t.Run("own notification is removed", func(t *testing.T) {
		notifications := new(mocks.MockNotificationRepository)
		notifications.On("FindByIDAndUser", uint64(1), uint64(1)).
			Return(&models.Notification{ID: 1, UserID: 1}, nil)
		notifications.On("Delete", uint64(1), uint64(1)).Return(nil)

		handler := handlers.NewNotificationHandler(notifications)
		router := setupTestRouter()
		router.Use(asUser(1))
		router.DELETE("/notifications/:id", handler.Delete)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/notifications/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		notifications.AssertExpectations(t)
	})

	t.Run("someone else's notification is not found", func(t *testing.T) {
		notifications := new(mocks.MockNotificationRepository)
		notifications.On("FindByIDAndUser", uint64(1), uint64(2)).Return(nil, assert.AnError)

		handler := handlers.NewNotificationHandler(notifications)
		router := setupTestRouter()
		router.Use(asUser(2))
		router.DELETE("/notifications/:id", handler.Delete)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/notifications/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		notifications.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
