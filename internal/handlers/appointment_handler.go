package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"localgov-backend/internal/models"
	"localgov-backend/internal/repository"
	"localgov-backend/internal/scheduler"
	"localgov-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AppointmentHandler struct {
	appointments  repository.AppointmentRepository
	services      repository.ServiceRepository
	notifications repository.NotificationRepository
}

func NewAppointmentHandler(
	appointments repository.AppointmentRepository,
	services repository.ServiceRepository,
	notifications repository.NotificationRepository,
) *AppointmentHandler {
	return &AppointmentHandler{appointments, services, notifications}
}

// List shows the citizen's own appointments.
// Filters: ?status= &page= &limit= &upcoming=true
func (h *AppointmentHandler) List(c *gin.Context) {
	userID := c.GetUint64("userID")

	opts := repository.AppointmentListOptions{
		Status:   c.Query("status"),
		Upcoming: c.Query("upcoming") == "true",
		Page:     utils.StringToInt(c.Query("page"), 1),
		Limit:    utils.StringToInt(c.Query("limit"), 10),
	}

	appointments, total, err := h.appointments.ListByUser(userID, opts)
	if err != nil {
		log.Printf("Error listing appointments: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to fetch appointments", nil)
		return
	}

	utils.PaginatedResponse(c, "My Appointments", appointments, len(appointments), total, opts.Page, opts.Limit)
}

// Dashboard returns the next 5 upcoming appointments for the home screen.
func (h *AppointmentHandler) Dashboard(c *gin.Context) {
	userID := c.GetUint64("userID")

	appointments, err := h.appointments.Upcoming(userID, 5)
	if err != nil {
		log.Printf("Error fetching dashboard appointments: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to fetch appointments", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Upcoming Appointments", appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	userID := c.GetUint64("userID")
	id := utils.StringToUint64(c.Param("id"))

	appointment, err := h.appointments.FindByIDAndUser(id, userID)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Appointment not found", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Appointment Detail", appointment)
}

// Slots lists the free time slots for a service on a date.
// GET /appointments/slots/:serviceId/:date
func (h *AppointmentHandler) Slots(c *gin.Context) {
	serviceID := uint(utils.StringToUint64(c.Param("serviceId")))

	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid date, use YYYY-MM-DD", nil)
		return
	}

	service, err := h.services.FindByID(serviceID)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Service not found", nil)
		return
	}

	booked, err := h.appointments.BookedSlots(serviceID, c.Param("date"))
	if err != nil {
		log.Printf("Error fetching booked slots: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to fetch slots", nil)
		return
	}

	free := scheduler.AvailableSlots(service.ParseWindows(), date.Weekday().String(), booked)

	utils.APIResponse(c, http.StatusOK, true, "Available Slots", gin.H{
		"service_id": service.ID,
		"date":       c.Param("date"),
		"slots":      free,
	})
}

// Create books an appointment. The queue number and wait estimate are
// assigned atomically by the repository.
func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.GetUint64("userID")

	var input models.CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	if !scheduler.IsCandidate(input.TimeSlot) {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid time slot", nil)
		return
	}

	service, err := h.services.FindByID(input.ServiceID)
	if err != nil || !service.IsActive {
		utils.APIResponse(c, http.StatusNotFound, false, "Service not found", nil)
		return
	}

	priority := input.Priority
	if priority == "" {
		priority = "normal"
	}

	appointment := models.Appointment{
		UserID:          userID,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		Department:      service.Department,
		Location:        service.Location,
		AppointmentDate: input.AppointmentDate,
		TimeSlot:        input.TimeSlot,
		Status:          models.StatusPending,
		Description:     input.Description,
		Priority:        priority,
	}

	if err := h.appointments.Book(&appointment); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			utils.APIResponse(c, http.StatusBadRequest, false, "Time slot is already booked", nil)
			return
		}
		log.Printf("Error booking appointment: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to book appointment", nil)
		return
	}

	h.notify(userID, "Appointment Booked",
		fmt.Sprintf("Your %s appointment on %s at %s is queued as number %d.",
			service.Name, appointment.AppointmentDate, appointment.TimeSlot, appointment.QueueNumber),
		appointment.ID)

	utils.APIResponse(c, http.StatusCreated, true, "Appointment Booked!", appointment)
}

// Update reschedules or edits an appointment. Only pending/confirmed ones
// can be touched; a date change goes into the reschedule history.
func (h *AppointmentHandler) Update(c *gin.Context) {
	userID := c.GetUint64("userID")
	id := utils.StringToUint64(c.Param("id"))

	appointment, err := h.appointments.FindByIDAndUser(id, userID)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Appointment not found", nil)
		return
	}

	if !appointment.IsActive() {
		utils.APIResponse(c, http.StatusBadRequest, false, "Appointment can no longer be modified", nil)
		return
	}

	var input models.UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	if input.TimeSlot != "" && !scheduler.IsCandidate(input.TimeSlot) {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid time slot", nil)
		return
	}

	if input.AppointmentDate != "" && input.AppointmentDate != appointment.AppointmentDate {
		appointment.AppendReschedule(models.RescheduleEntry{
			OldDate:   appointment.AppointmentDate,
			NewDate:   input.AppointmentDate,
			Reason:    input.Reason,
			ChangedBy: userID,
			ChangedAt: time.Now(),
		})
		appointment.AppointmentDate = input.AppointmentDate
		appointment.Status = models.StatusRescheduled
	}
	if input.TimeSlot != "" {
		appointment.TimeSlot = input.TimeSlot
	}
	if input.Description != "" {
		appointment.Description = input.Description
	}
	if input.Priority != "" {
		appointment.Priority = input.Priority
	}

	// The booking moved, so its slot claim moves with it
	key := models.SlotKey(appointment.ServiceID, appointment.AppointmentDate, appointment.TimeSlot)
	appointment.ActiveSlotKey = &key

	if err := h.appointments.Update(appointment); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			utils.APIResponse(c, http.StatusBadRequest, false, "Time slot is already booked", nil)
			return
		}
		log.Printf("Error updating appointment: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update appointment", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Appointment Updated", appointment)
}

// Cancel marks an appointment cancelled and releases its slot.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.GetUint64("userID")
	id := utils.StringToUint64(c.Param("id"))

	appointment, err := h.appointments.FindByIDAndUser(id, userID)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Appointment not found", nil)
		return
	}

	if appointment.Status == models.StatusCancelled {
		utils.APIResponse(c, http.StatusBadRequest, false, "Appointment is already cancelled", nil)
		return
	}
	if appointment.Status == models.StatusCompleted {
		utils.APIResponse(c, http.StatusBadRequest, false, "Completed appointments cannot be cancelled", nil)
		return
	}

	var input models.CancelAppointmentInput
	_ = c.ShouldBindJSON(&input) // reason is optional, body may be empty

	appointment.Status = models.StatusCancelled
	appointment.CancellationReason = input.Reason
	appointment.ActiveSlotKey = nil // frees the slot for someone else

	if err := h.appointments.Update(appointment); err != nil {
		log.Printf("Error cancelling appointment: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to cancel appointment", nil)
		return
	}

	h.notify(userID, "Appointment Cancelled",
		fmt.Sprintf("Your %s appointment on %s has been cancelled.",
			appointment.ServiceName, appointment.AppointmentDate),
		appointment.ID)

	utils.APIResponse(c, http.StatusOK, true, "Appointment Cancelled", appointment)
}

// ListAll is the officer view of every appointment in the system.
func (h *AppointmentHandler) ListAll(c *gin.Context) {
	opts := repository.AppointmentListOptions{
		Status:   c.Query("status"),
		Upcoming: c.Query("upcoming") == "true",
		Page:     utils.StringToInt(c.Query("page"), 1),
		Limit:    utils.StringToInt(c.Query("limit"), 20),
	}

	appointments, total, err := h.appointments.ListAll(opts)
	if err != nil {
		log.Printf("Error listing all appointments: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to fetch appointments", nil)
		return
	}

	utils.PaginatedResponse(c, "All Appointments", appointments, len(appointments), total, opts.Page, opts.Limit)
}

// UpdateStatus lets an officer confirm or complete a booking.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id := utils.StringToUint64(c.Param("id"))

	var input struct {
		Status string `json:"status" binding:"required,oneof=confirmed completed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	appointment, err := h.appointments.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.APIResponse(c, http.StatusNotFound, false, "Appointment not found", nil)
			return
		}
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to fetch appointment", nil)
		return
	}

	if !appointment.IsActive() {
		utils.APIResponse(c, http.StatusBadRequest, false, "Appointment status cannot be changed", nil)
		return
	}

	appointment.Status = input.Status
	if input.Status == models.StatusCompleted {
		appointment.ActiveSlotKey = nil
	}

	if err := h.appointments.Update(appointment); err != nil {
		log.Printf("Error updating appointment status: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update status", nil)
		return
	}

	h.notify(appointment.UserID, "Appointment "+input.Status,
		fmt.Sprintf("Your %s appointment on %s is now %s.",
			appointment.ServiceName, appointment.AppointmentDate, input.Status),
		appointment.ID)

	utils.APIResponse(c, http.StatusOK, true, "Appointment Status Updated", appointment)
}

// notify stores an in-app notification. Best effort, a failed insert never
// fails the booking it belongs to.
func (h *AppointmentHandler) notify(userID uint64, title, message string, appointmentID uint64) {
	relatedID := appointmentID
	err := h.notifications.Create(&models.Notification{
		UserID:      userID,
		Title:       title,
		Message:     message,
		Type:        models.NotifAppointment,
		RelatedType: "appointment",
		RelatedID:   &relatedID,
	})
	if err != nil {
		log.Printf("Error creating notification: %v", err)
	}
}
