package repository

import (
	"agriconnect/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// DetectionRepository stores records for all three detection domains.
// Writes are best-effort from the caller's point of view: a failure here
// never fails the classification request.
type DetectionRepository interface {
	CreateBird(detection *models.BirdDetection) error
	CreateInsect(detection *models.InsectDetection) error
	CreateLeaf(detection *models.LeafDetection) error
	ListBirdsByUser(userID string, limit int) ([]models.BirdDetection, error)
	ListInsectsByUser(userID string, limit int) ([]models.InsectDetection, error)
	ListLeavesByUser(userID string, limit int) ([]models.LeafDetection, error)
}

type detectionRepository struct {
	db *gorm.DB
}

func NewDetectionRepository(db *gorm.DB) DetectionRepository {
	return &detectionRepository{db: db}
}

func (r *detectionRepository) CreateBird(detection *models.BirdDetection) error {
	return r.db.Create(detection).Error
}

func (r *detectionRepository) CreateInsect(detection *models.InsectDetection) error {
	return r.db.Create(detection).Error
}

func (r *detectionRepository) CreateLeaf(detection *models.LeafDetection) error {
	return r.db.Create(detection).Error
}

func (r *detectionRepository) ListBirdsByUser(userID string, limit int) ([]models.BirdDetection, error) {
	var detections []models.BirdDetection
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&detections).Error
	return detections, err
}

func (r *detectionRepository) ListInsectsByUser(userID string, limit int) ([]models.InsectDetection, error) {
	var detections []models.InsectDetection
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&detections).Error
	return detections, err
}

func (r *detectionRepository) ListLeavesByUser(userID string, limit int) ([]models.LeafDetection, error) {
	var detections []models.LeafDetection
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&detections).Error
	return detections, err
}
