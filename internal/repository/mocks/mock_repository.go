// Package mocks holds testify doubles for the repository interfaces,
// shared by the handler tests.
package mocks

import (
	"localgov-backend/internal/models"
	"localgov-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockAppointmentRepository

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Book(appointment *models.Appointment) error {
	args := m.Called(appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(id uint64) (*models.Appointment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByIDAndUser(id, userID uint64) (*models.Appointment, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListByUser(userID uint64, opts repository.AppointmentListOptions) ([]models.Appointment, int64, error) {
	args := m.Called(userID, opts)
	return args.Get(0).([]models.Appointment), args.Get(1).(int64), args.Error(2)
}

func (m *MockAppointmentRepository) ListAll(opts repository.AppointmentListOptions) ([]models.Appointment, int64, error) {
	args := m.Called(opts)
	return args.Get(0).([]models.Appointment), args.Get(1).(int64), args.Error(2)
}

func (m *MockAppointmentRepository) Upcoming(userID uint64, limit int) ([]models.Appointment, error) {
	args := m.Called(userID, limit)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) BookedSlots(serviceID uint, date string) ([]string, error) {
	args := m.Called(serviceID, date)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAppointmentRepository) Update(appointment *models.Appointment) error {
	args := m.Called(appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) DueOn(date string) ([]models.Appointment, error) {
	args := m.Called(date)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) CountByStatus(status string) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

// MockServiceRepository

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(service *models.Service) error {
	args := m.Called(service)
	return args.Error(0)
}

func (m *MockServiceRepository) FindByID(id uint) (*models.Service, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockServiceRepository) List(activeOnly bool) ([]models.Service, error) {
	args := m.Called(activeOnly)
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *MockServiceRepository) Update(service *models.Service) error {
	args := m.Called(service)
	return args.Error(0)
}

func (m *MockServiceRepository) Deactivate(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockNotificationRepository

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(userID uint64, unreadOnly bool, page, limit int) ([]models.Notification, int64, error) {
	args := m.Called(userID, unreadOnly, page, limit)
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) CountUnread(userID uint64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) FindByIDAndUser(id, userID uint64) (*models.Notification, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(userID uint64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) Delete(id, userID uint64) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

// MockUserRepository

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id uint64) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByResetToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByVerifyToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) List(page, limit int) ([]models.User, int64, error) {
	args := m.Called(page, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CountByRole(role string) (int64, error) {
	args := m.Called(role)
	return args.Get(0).(int64), args.Error(1)
}

// MockDocumentRepository

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(document *models.Document) error {
	args := m.Called(document)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindByID(id uint64) (*models.Document, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByIDAndUser(id, userID uint64) (*models.Document, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByUser(userID uint64, opts repository.DocumentListOptions) ([]models.Document, int64, error) {
	args := m.Called(userID, opts)
	return args.Get(0).([]models.Document), args.Get(1).(int64), args.Error(2)
}

func (m *MockDocumentRepository) ListByStatus(status string, page, limit int) ([]models.Document, int64, error) {
	args := m.Called(status, page, limit)
	return args.Get(0).([]models.Document), args.Get(1).(int64), args.Error(2)
}

func (m *MockDocumentRepository) Update(document *models.Document) error {
	args := m.Called(document)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDocumentRepository) CountByStatus(status string) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(payment *models.Payment) error {
	args := m.Called(payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByOrderNo(orderNo string) (*models.Payment, error) {
	args := m.Called(orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaidByAppointment(appointmentID uint64) (*models.Payment, error) {
	args := m.Called(appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(payment *models.Payment) error {
	args := m.Called(payment)
	return args.Error(0)
}
