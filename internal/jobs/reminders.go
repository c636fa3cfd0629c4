// Package jobs runs the background schedules that don't belong to a request.
package jobs

import (
	"fmt"
	"log"
	"time"

	"localgov-backend/internal/models"
	"localgov-backend/internal/repository"
	"localgov-backend/pkg/utils"

	"github.com/robfig/cron/v3"
)

type Reminder struct {
	appointments  repository.AppointmentRepository
	notifications repository.NotificationRepository
}

func NewReminder(
	appointments repository.AppointmentRepository,
	notifications repository.NotificationRepository,
) *Reminder {
	return &Reminder{appointments, notifications}
}

// Start schedules the daily reminder run at 07:00 and returns the cron so
// main can stop it on shutdown.
func (j *Reminder) Start() *cron.Cron {
	c := cron.New()

	c.AddFunc("0 7 * * *", func() {
		log.Println("Running daily appointment reminders...")
		j.Run()
	})

	c.Start()
	return c
}

// Run reminds every citizen with a still-active appointment tomorrow.
func (j *Reminder) Run() {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	appointments, err := j.appointments.DueOn(tomorrow)
	if err != nil {
		log.Printf("Error fetching tomorrow's appointments: %v", err)
		return
	}

	for _, appointment := range appointments {
		relatedID := appointment.ID
		message := fmt.Sprintf("Reminder: your %s appointment is tomorrow (%s) at %s. Queue number %d.",
			appointment.ServiceName, appointment.AppointmentDate, appointment.TimeSlot, appointment.QueueNumber)

		if err := j.notifications.Create(&models.Notification{
			UserID:      appointment.UserID,
			Title:       "Appointment Tomorrow",
			Message:     message,
			Type:        models.NotifAppointment,
			Priority:    "high",
			RelatedType: "appointment",
			RelatedID:   &relatedID,
		}); err != nil {
			log.Printf("Error creating reminder for appointment %d: %v", appointment.ID, err)
			continue
		}

		if appointment.User != nil && appointment.User.FCMToken != "" {
			go utils.SendNotification(appointment.User.FCMToken, "Appointment Tomorrow", message,
				map[string]string{"appointment_id": fmt.Sprintf("%d", appointment.ID), "type": "reminder"})
		}
	}

	log.Printf("Reminders sent for %d appointments", len(appointments))
}
