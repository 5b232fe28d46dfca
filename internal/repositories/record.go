package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"mockmate/interview-api/internal/models"
)

type RecordRepository interface {
	CreateInterviewRecord(rec *models.InterviewRecord) error
	CreateSessionRecord(rec *models.SessionRecord) error
	FindInterviewRecordsByUser(email string) ([]models.InterviewRecord, error)
}

type recordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

// CreateInterviewRecord implements RecordRepository.
func (r *recordRepository) CreateInterviewRecord(rec *models.InterviewRecord) error {
	if err := r.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create interview record: %w", err)
	}
	return nil
}

// CreateSessionRecord implements RecordRepository.
func (r *recordRepository) CreateSessionRecord(rec *models.SessionRecord) error {
	if err := r.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create session record: %w", err)
	}
	return nil
}

// FindInterviewRecordsByUser implements RecordRepository.
// Records come back newest first.
func (r *recordRepository) FindInterviewRecordsByUser(email string) ([]models.InterviewRecord, error) {
	var recs []models.InterviewRecord
	err := r.db.
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find interview records: %w", err)
	}
	return recs, nil
}
