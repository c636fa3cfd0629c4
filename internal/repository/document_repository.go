package repository

import (
	"localgov-backend/internal/models"

	"gorm.io/gorm"
)

type DocumentListOptions struct {
	Status   string
	Category string
	Page     int
	Limit    int
}

type DocumentRepository interface {
	Create(document *models.Document) error
	FindByID(id uint64) (*models.Document, error)
	FindByIDAndUser(id, userID uint64) (*models.Document, error)
	ListByUser(userID uint64, opts DocumentListOptions) ([]models.Document, int64, error)
	ListByStatus(status string, page, limit int) ([]models.Document, int64, error)
	Update(document *models.Document) error
	Delete(id uint64) error
	CountByStatus(status string) (int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db}
}

func (r *documentRepository) Create(document *models.Document) error {
	return r.db.Create(document).Error
}

func (r *documentRepository) FindByID(id uint64) (*models.Document, error) {
	var document models.Document
	err := r.db.First(&document, id).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) FindByIDAndUser(id, userID uint64) (*models.Document, error) {
	var document models.Document
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&document).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) ListByUser(userID uint64, opts DocumentListOptions) ([]models.Document, int64, error) {
	query := r.db.Model(&models.Document{}).Where("user_id = ?", userID)
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var documents []models.Document
	err := query.Order("created_at desc").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&documents).Error
	return documents, total, err
}

// ListByStatus is the officer view across all citizens.
func (r *documentRepository) ListByStatus(status string, page, limit int) ([]models.Document, int64, error) {
	query := r.db.Model(&models.Document{}).Preload("User")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var documents []models.Document
	err := query.Order("created_at asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&documents).Error
	return documents, total, err
}

func (r *documentRepository) Update(document *models.Document) error {
	return r.db.Save(document).Error
}

func (r *documentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Document{}, id).Error
}

func (r *documentRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Document{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
