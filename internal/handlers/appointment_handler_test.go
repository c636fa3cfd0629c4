package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"localgov-backend/internal/handlers"
	"localgov-backend/internal/models"
	"localgov-backend/internal/repository"
	"localgov-backend/internal/repository/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// stub for the auth middleware
func asUser(userID uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", models.RoleCitizen)
		c.Next()
	}
}

func newAppointmentHandler() (*handlers.AppointmentHandler, *mocks.MockAppointmentRepository, *mocks.MockServiceRepository, *mocks.MockNotificationRepository) {
	appointments := new(mocks.MockAppointmentRepository)
	services := new(mocks.MockServiceRepository)
	notifications := new(mocks.MockNotificationRepository)
	handler := handlers.NewAppointmentHandler(appointments, services, notifications)
	return handler, appointments, services, notifications
}

func passportService() *models.Service {
	return &models.Service{
		ID:         3,
		Name:       "Passport Renewal",
		Department: "Department of Immigration",
		Location:   "Colombo 01",
		Fee:        3500,
		Windows:    json.RawMessage(`[{"day":"Monday","start_time":"09:00","end_time":"16:30","slot_duration":30}]`),
		IsActive:   true,
	}
}

type appointmentResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    models.Appointment `json:"data"`
}

func TestCreateAppointment(t *testing.T) {
	validBody := map[string]interface{}{
		"service_id":       3,
		"appointment_date": "2025-09-01",
		"time_slot":        "09:00",
	}

	tests := []struct {
		name           string
		body           map[string]interface{}
		setupMocks     func(*mocks.MockAppointmentRepository, *mocks.MockServiceRepository, *mocks.MockNotificationRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "first booking of the day gets queue number 1",
			body: validBody,
			setupMocks: func(a *mocks.MockAppointmentRepository, s *mocks.MockServiceRepository, n *mocks.MockNotificationRepository) {
				s.On("FindByID", uint(3)).Return(passportService(), nil)
				a.On("Book", mock.AnythingOfType("*models.Appointment")).
					Run(func(args mock.Arguments) {
						appt := args.Get(0).(*models.Appointment)
						appt.ID = 10
						appt.QueueNumber = 1
						appt.EstimatedWaitTime = 0
					}).Return(nil)
				n.On("Create", mock.AnythingOfType("*models.Notification")).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Appointment Booked!",
		},
		{
			name: "slot already booked",
			body: validBody,
			setupMocks: func(a *mocks.MockAppointmentRepository, s *mocks.MockServiceRepository, n *mocks.MockNotificationRepository) {
				s.On("FindByID", uint(3)).Return(passportService(), nil)
				a.On("Book", mock.AnythingOfType("*models.Appointment")).Return(repository.ErrSlotTaken)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Time slot is already booked",
		},
		{
			name: "unknown service",
			body: validBody,
			setupMocks: func(a *mocks.MockAppointmentRepository, s *mocks.MockServiceRepository, n *mocks.MockNotificationRepository) {
				s.On("FindByID", uint(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Service not found",
		},
		{
			name: "slot not in the candidate list",
			body: map[string]interface{}{
				"service_id":       3,
				"appointment_date": "2025-09-01",
				"time_slot":        "12:00", // lunch break
			},
			setupMocks:     func(a *mocks.MockAppointmentRepository, s *mocks.MockServiceRepository, n *mocks.MockNotificationRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid time slot",
		},
		{
			name: "missing fields",
			body: map[string]interface{}{
				"service_id": 3,
			},
			setupMocks:     func(a *mocks.MockAppointmentRepository, s *mocks.MockServiceRepository, n *mocks.MockNotificationRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, appointments, services, notifications := newAppointmentHandler()
			tt.setupMocks(appointments, services, notifications)

			router := setupTestRouter()
			router.Use(asUser(1))
			router.POST("/appointments", handler.Create)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp appointmentResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMsg, resp.Message)

			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, 1, resp.Data.QueueNumber)
				assert.Equal(t, 0, resp.Data.EstimatedWaitTime)
				assert.Equal(t, models.StatusPending, resp.Data.Status)
				assert.Equal(t, "Passport Renewal", resp.Data.ServiceName)
			}

			appointments.AssertExpectations(t)
			services.AssertExpectations(t)
		})
	}
}

func TestCancelAppointment(t *testing.T) {
	tests := []struct {
		name           string
		current        string
		expectedStatus int
		expectedMsg    string
		wantsUpdate    bool
	}{
		{"cancel a pending appointment", models.StatusPending, http.StatusOK, "Appointment Cancelled", true},
		{"cancel twice fails", models.StatusCancelled, http.StatusBadRequest, "Appointment is already cancelled", false},
		{"cancel a completed appointment fails", models.StatusCompleted, http.StatusBadRequest, "Completed appointments cannot be cancelled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, appointments, _, notifications := newAppointmentHandler()

			key := models.SlotKey(3, "2025-09-01", "09:00")
			appointment := &models.Appointment{
				ID:              7,
				UserID:          1,
				ServiceID:       3,
				ServiceName:     "Passport Renewal",
				AppointmentDate: "2025-09-01",
				TimeSlot:        "09:00",
				Status:          tt.current,
				ActiveSlotKey:   &key,
			}
			appointments.On("FindByIDAndUser", uint64(7), uint64(1)).Return(appointment, nil)
			if tt.wantsUpdate {
				appointments.On("Update", mock.AnythingOfType("*models.Appointment")).Return(nil)
				notifications.On("Create", mock.AnythingOfType("*models.Notification")).Return(nil)
			}

			router := setupTestRouter()
			router.Use(asUser(1))
			router.DELETE("/appointments/:id", handler.Cancel)

			body, _ := json.Marshal(map[string]string{"reason": "cannot attend"})
			req := httptest.NewRequest(http.MethodDelete, "/appointments/7", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp appointmentResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMsg, resp.Message)

			if tt.wantsUpdate {
				assert.Equal(t, models.StatusCancelled, appointment.Status)
				assert.Equal(t, "cannot attend", appointment.CancellationReason)
				assert.Nil(t, appointment.ActiveSlotKey, "slot must be released")
			} else {
				appointments.AssertNotCalled(t, "Update", mock.Anything)
				assert.Equal(t, tt.current, appointment.Status, "status must stay unchanged")
			}
		})
	}
}

func TestUpdateAppointment(t *testing.T) {
	t.Run("completed appointments cannot be edited", func(t *testing.T) {
		handler, appointments, _, _ := newAppointmentHandler()

		appointment := &models.Appointment{
			ID: 7, UserID: 1, Status: models.StatusCompleted,
			AppointmentDate: "2025-09-01", TimeSlot: "09:00",
		}
		appointments.On("FindByIDAndUser", uint64(7), uint64(1)).Return(appointment, nil)

		router := setupTestRouter()
		router.Use(asUser(1))
		router.PUT("/appointments/:id", handler.Update)

		body, _ := json.Marshal(map[string]string{"appointment_date": "2025-09-08"})
		req := httptest.NewRequest(http.MethodPut, "/appointments/7", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		appointments.AssertNotCalled(t, "Update", mock.Anything)
		assert.Equal(t, "2025-09-01", appointment.AppointmentDate)
	})

	t.Run("date change records reschedule history", func(t *testing.T) {
		handler, appointments, _, _ := newAppointmentHandler()

		key := models.SlotKey(3, "2025-09-01", "09:00")
		appointment := &models.Appointment{
			ID: 7, UserID: 1, ServiceID: 3, Status: models.StatusConfirmed,
			AppointmentDate: "2025-09-01", TimeSlot: "09:00", ActiveSlotKey: &key,
		}
		appointments.On("FindByIDAndUser", uint64(7), uint64(1)).Return(appointment, nil)
		appointments.On("Update", mock.AnythingOfType("*models.Appointment")).Return(nil)

		router := setupTestRouter()
		router.Use(asUser(1))
		router.PUT("/appointments/:id", handler.Update)

		body, _ := json.Marshal(map[string]string{
			"appointment_date": "2025-09-08",
			"reason":           "travelling",
		})
		req := httptest.NewRequest(http.MethodPut, "/appointments/7", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.StatusRescheduled, appointment.Status)
		assert.Equal(t, "2025-09-08", appointment.AppointmentDate)

		var history []models.RescheduleEntry
		assert.NoError(t, json.Unmarshal(appointment.RescheduleHistory, &history))
		assert.Len(t, history, 1)
		assert.Equal(t, "2025-09-01", history[0].OldDate)
		assert.Equal(t, "2025-09-08", history[0].NewDate)
		assert.Equal(t, "travelling", history[0].Reason)

		assert.Equal(t, models.SlotKey(3, "2025-09-08", "09:00"), *appointment.ActiveSlotKey)
	})

	t.Run("moving onto a taken slot fails", func(t *testing.T) {
		handler, appointments, _, _ := newAppointmentHandler()

		appointment := &models.Appointment{
			ID: 7, UserID: 1, ServiceID: 3, Status: models.StatusPending,
			AppointmentDate: "2025-09-01", TimeSlot: "09:00",
		}
		appointments.On("FindByIDAndUser", uint64(7), uint64(1)).Return(appointment, nil)
		appointments.On("Update", mock.AnythingOfType("*models.Appointment")).Return(repository.ErrSlotTaken)

		router := setupTestRouter()
		router.Use(asUser(1))
		router.PUT("/appointments/:id", handler.Update)

		body, _ := json.Marshal(map[string]string{"time_slot": "09:30"})
		req := httptest.NewRequest(http.MethodPut, "/appointments/7", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp appointmentResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Time slot is already booked", resp.Message)
	})
}

func TestSlots(t *testing.T) {
	t.Run("booked slots are removed", func(t *testing.T) {
		handler, appointments, services, _ := newAppointmentHandler()

		services.On("FindByID", uint(3)).Return(passportService(), nil)
		// 2025-09-01 is a Monday
		appointments.On("BookedSlots", uint(3), "2025-09-01").Return([]string{"09:00", "14:00"}, nil)

		router := setupTestRouter()
		router.Use(asUser(1))
		router.GET("/appointments/slots/:serviceId/:date", handler.Slots)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/appointments/slots/3/2025-09-01", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Slots []string `json:"slots"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data.Slots, 10)
		assert.NotContains(t, resp.Data.Slots, "09:00")
		assert.NotContains(t, resp.Data.Slots, "14:00")
		assert.Contains(t, resp.Data.Slots, "09:30")
	})

	t.Run("day without a configured window has no slots", func(t *testing.T) {
		handler, appointments, services, _ := newAppointmentHandler()

		services.On("FindByID", uint(3)).Return(passportService(), nil)
		// 2025-09-07 is a Sunday, the service only opens Mondays
		appointments.On("BookedSlots", uint(3), "2025-09-07").Return([]string{}, nil)

		router := setupTestRouter()
		router.Use(asUser(1))
		router.GET("/appointments/slots/:serviceId/:date", handler.Slots)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/appointments/slots/3/2025-09-07", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Slots []string `json:"slots"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Data.Slots)
	})

	t.Run("bad date is rejected", func(t *testing.T) {
		handler, _, _, _ := newAppointmentHandler()

		router := setupTestRouter()
		router.Use(asUser(1))
		router.GET("/appointments/slots/:serviceId/:date", handler.Slots)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/appointments/slots/3/01-09-2025", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListAppointments(t *testing.T) {
	handler, appointments, _, _ := newAppointmentHandler()

	rows := []models.Appointment{
		{ID: 1, UserID: 1, Status: models.StatusPending, AppointmentDate: "2025-09-01"},
		{ID: 2, UserID: 1, Status: models.StatusConfirmed, AppointmentDate: "2025-09-02"},
	}
	appointments.On("ListByUser", uint64(1), repository.AppointmentListOptions{
		Status: "", Upcoming: true, Page: 1, Limit: 10,
	}).Return(rows, int64(12), nil)

	router := setupTestRouter()
	router.Use(asUser(1))
	router.GET("/appointments", handler.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/appointments?upcoming=true", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success    bool  `json:"success"`
		Count      int   `json:"count"`
		Total      int64 `json:"total"`
		Pagination struct {
			Page  int `json:"page"`
			Pages int `json:"pages"`
		} `json:"pagination"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, int64(12), resp.Total)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 2, resp.Pagination.Pages)
}

func TestUpdateStatusTransitionGuard(t *testing.T) {
	handler, appointments, _, _ := newAppointmentHandler()

	appointment := &models.Appointment{ID: 7, UserID: 2, Status: models.StatusCancelled}
	appointments.On("FindByID", uint64(7)).Return(appointment, nil)

	router := setupTestRouter()
	router.Use(asUser(9)) // officer identity, role check happens in middleware
	router.PUT("/officer/appointments/:id/status", handler.UpdateStatus)

	body, _ := json.Marshal(map[string]string{"status": "completed"})
	req := httptest.NewRequest(http.MethodPut, "/officer/appointments/7/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	appointments.AssertNotCalled(t, "Update", mock.Anything)
}
