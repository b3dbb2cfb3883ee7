package repository

import (
	"github.com/avigeya/projectboard/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by internal ID
func (r *GormUserRepository) FindByID(id int64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByTgUserID finds a user by their Telegram platform id
func (r *GormUserRepository) FindByTgUserID(tgUserID int64) (*models.User, error) {
	var user models.User
	if err := r.db.Where("tg_user_id = ?", tgUserID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll lists every user
func (r *GormUserRepository) FindAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
