package repository

import (
	"localgov-backend/internal/models"

	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(service *models.Service) error
	FindByID(id uint) (*models.Service, error)
	List(activeOnly bool) ([]models.Service, error)
	Update(service *models.Service) error
	Deactivate(id uint) error
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db}
}

func (r *serviceRepository) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

func (r *serviceRepository) FindByID(id uint) (*models.Service, error) {
	var service models.Service
	err := r.db.First(&service, id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) List(activeOnly bool) ([]models.Service, error) {
	var services []models.Service
	query := r.db.Order("department asc, name asc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&services).Error
	return services, err
}

func (r *serviceRepository) Update(service *models.Service) error {
	return r.db.Save(service).Error
}

// Deactivate soft-disables a service, bookings against it stay intact.
func (r *serviceRepository) Deactivate(id uint) error {
	return r.db.Model(&models.Service{}).Where("id = ?", id).Update("is_active", false).Error
}
