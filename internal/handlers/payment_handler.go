package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"localgov-backend/internal/models"
	"localgov-backend/internal/repository"
	"localgov-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	payments      repository.PaymentRepository
	appointments  repository.AppointmentRepository
	services      repository.ServiceRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
}

func NewPaymentHandler(
	payments repository.PaymentRepository,
	appointments repository.AppointmentRepository,
	services repository.ServiceRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
) *PaymentHandler {
	return &PaymentHandler{payments, appointments, services, users, notifications}
}

// Pay creates a Snap transaction for the service fee of an appointment.
// POST /appointments/:id/pay
func (h *PaymentHandler) Pay(c *gin.Context) {
	userID := c.GetUint64("userID")
	appointmentID := utils.StringToUint64(c.Param("id"))

	appointment, err := h.appointments.FindByIDAndUser(appointmentID, userID)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Appointment not found", nil)
		return
	}

	service, err := h.services.FindByID(appointment.ServiceID)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Service not found", nil)
		return
	}

	if service.Fee <= 0 {
		utils.APIResponse(c, http.StatusBadRequest, false, "This service has no fee to pay", nil)
		return
	}

	if _, err := h.payments.FindPaidByAppointment(appointment.ID); err == nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Fee is already paid for this appointment", nil)
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "User not found", nil)
		return
	}

	orderNo := fmt.Sprintf("GOV-%d", time.Now().Unix())
	payment := models.Payment{
		AppointmentID: appointment.ID,
		OrderNo:       orderNo,
		Amount:        service.Fee,
		Status:        models.PayPending,
	}

	if err := h.payments.Create(&payment); err != nil {
		log.Printf("Error creating payment row: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to create payment", nil)
		return
	}

	var s snap.Client
	s.New(os.Getenv("MIDTRANS_SERVER_KEY"), midtrans.Sandbox)

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderNo,
			GrossAmt: int64(service.Fee),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
			Phone: user.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    fmt.Sprintf("SVC-%d", service.ID),
				Name:  service.Name,
				Price: int64(service.Fee),
				Qty:   1,
			},
		},
	}

	snapResp, errSnap := s.CreateTransaction(req)
	if errSnap != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Payment gateway error", errSnap.GetMessage())
		return
	}

	payment.SnapToken = snapResp.Token
	payment.RedirectURL = snapResp.RedirectURL
	if err := h.payments.Update(&payment); err != nil {
		log.Printf("Error saving snap token: %v", err)
	}

	utils.APIResponse(c, http.StatusCreated, true, "Payment created, please complete it", gin.H{
		"order_no":     payment.OrderNo,
		"amount":       payment.Amount,
		"snap_token":   snapResp.Token,
		"redirect_url": snapResp.RedirectURL,
	})
}

// Notification body from Midtrans, only the fields we act on.
type MidtransNotification struct {
	TransactionStatus string `json:"transaction_status"`
	OrderID           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
}

// HandleNotification is the public webhook Midtrans calls after a payment
// attempt. It maps the gateway status onto our payment status.
func (h *PaymentHandler) HandleNotification(c *gin.Context) {
	var notification MidtransNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid JSON", nil)
		return
	}

	var status string
	switch notification.TransactionStatus {
	case "capture":
		if notification.FraudStatus == "challenge" {
			status = models.PayPending // still being verified by the bank
		} else if notification.FraudStatus == "accept" {
			status = models.PayPaid
		}
	case "settlement":
		status = models.PayPaid
	case "deny", "cancel", "expire":
		status = models.PayFailed
	case "pending":
		status = models.PayPending
	default:
		status = models.PayPending
	}

	log.Printf("[Webhook] Midtrans notification - OrderID: %s, TransactionStatus: %s, FraudStatus: %s, MappedStatus: %s",
		notification.OrderID, notification.TransactionStatus, notification.FraudStatus, status)

	payment, err := h.payments.FindByOrderNo(notification.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Webhook] Payment not found: %s", notification.OrderID)
			utils.APIResponse(c, http.StatusNotFound, false, "Payment not found", nil)
			return
		}
		log.Printf("[Webhook] DB error fetching payment: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Database error", nil)
		return
	}

	if payment.Status != status {
		log.Printf("[Webhook] Updating payment %s from %s to %s", payment.OrderNo, payment.Status, status)
		payment.Status = status
		if err := h.payments.Update(payment); err != nil {
			log.Printf("[Webhook] DB error updating payment: %v", err)
			utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update payment", nil)
			return
		}
	}

	if payment.Appointment != nil {
		switch status {
		case models.PayPaid:
			h.notifyPayment(payment, "Payment Received",
				fmt.Sprintf("Fee of %.2f for your %s appointment has been received.",
					payment.Amount, payment.Appointment.ServiceName))
		case models.PayFailed:
			h.notifyPayment(payment, "Payment Failed",
				"Your payment failed or expired. Please try again from the appointment page.")
		}
	}

	// Midtrans expects a 200 so it stops retrying
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// notifyPayment stores the in-app notification and pushes it when the
// citizen has a registered device token.
func (h *PaymentHandler) notifyPayment(payment *models.Payment, title, message string) {
	userID := payment.Appointment.UserID
	relatedID := payment.ID

	if err := h.notifications.Create(&models.Notification{
		UserID:      userID,
		Title:       title,
		Message:     message,
		Type:        models.NotifPayment,
		RelatedType: "payment",
		RelatedID:   &relatedID,
	}); err != nil {
		log.Printf("Error creating payment notification: %v", err)
	}

	if user, err := h.users.FindByID(userID); err == nil && user.FCMToken != "" {
		go utils.SendNotification(user.FCMToken, title, message,
			map[string]string{"payment_id": fmt.Sprintf("%d", payment.ID), "type": "payment"})
	}
}
