package repository

import (
	"github.com/avigeya/projectboard/internal/models"
	"gorm.io/gorm"
)

// GormStatusRepository is a GORM implementation of StatusRepository
type GormStatusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates a new StatusRepository
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &GormStatusRepository{db: db}
}

// Create creates a new status
func (r *GormStatusRepository) Create(status *models.Status) error {
	return r.db.Create(status).Error
}

// FindByID finds a status by ID
func (r *GormStatusRepository) FindByID(id int64) (*models.Status, error) {
	var status models.Status
	if err := r.db.First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// FindAllOrdered lists every status sorted by its order field
func (r *GormStatusRepository) FindAllOrdered() ([]models.Status, error) {
	var statuses []models.Status
	if err := r.db.Order("sort_order").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// GormStageRepository is a GORM implementation of StageRepository
type GormStageRepository struct {
	db *gorm.DB
}

// NewStageRepository creates a new StageRepository
func NewStageRepository(db *gorm.DB) StageRepository {
	return &GormStageRepository{db: db}
}

// Create creates a new stage
func (r *GormStageRepository) Create(stage *models.Stage) error {
	return r.db.Create(stage).Error
}

// FindByID finds a stage by ID
func (r *GormStageRepository) FindByID(id int64) (*models.Stage, error) {
	var stage models.Stage
	if err := r.db.First(&stage, id).Error; err != nil {
		return nil, err
	}
	return &stage, nil
}

// FindAll lists every stage
func (r *GormStageRepository) FindAll() ([]models.Stage, error) {
	var stages []models.Stage
	if err := r.db.Find(&stages).Error; err != nil {
		return nil, err
	}
	return stages, nil
}
