package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mockmate/interview-api/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	FindByEmail(email string) (*models.User, error)
	List() ([]models.User, error)
	Upsert(user *models.User) error
	SetAdmin(email string, isAdmin bool) error
	Delete(email string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByEmail implements UserRepository.
func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// List implements UserRepository.
func (r *userRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("email ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Upsert implements UserRepository.
func (r *userRepository) Upsert(user *models.User) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_admin", "email_verified"}),
	}).Create(user).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// SetAdmin implements UserRepository.
func (r *userRepository) SetAdmin(email string, isAdmin bool) error {
	user := models.User{Email: email, IsAdmin: isAdmin}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_admin"}),
	}).Create(&user).Error
	if err != nil {
		return fmt.Errorf("failed to set admin flag: %w", err)
	}
	return nil
}

// Delete implements UserRepository.
func (r *userRepository) Delete(email string) error {
	if err := r.db.Where("email = ?", email).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
