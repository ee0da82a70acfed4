package repository

import (
	"agriconnect/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ReactionRepository interface {
	Create(reaction *models.Reaction) error
	Update(reaction *models.Reaction) error
	Delete(userID string, postID int64) error
	GetByUserAndPost(userID string, postID int64) (*models.Reaction, error)
	GetByPost(postID int64) ([]models.Reaction, error)
	CountByPost(postID int64) (int64, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Create inserts a reaction; the (user_id, post_id) unique index resolves
// concurrent inserts to a single row (callers check IsDuplicateKey).
func (r *reactionRepository) Create(reaction *models.Reaction) error {
	return r.db.Create(reaction).Error
}

func (r *reactionRepository) Update(reaction *models.Reaction) error {
	return r.db.Save(reaction).Error
}

func (r *reactionRepository) Delete(userID string, postID int64) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Reaction{}).Error
}

func (r *reactionRepository) GetByUserAndPost(userID string, postID int64) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) GetByPost(postID int64) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.Where("post_id = ?", postID).
		Preload("User").
		Order("created_at DESC").
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	return reactions, nil
}

func (r *reactionRepository) CountByPost(postID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Reaction{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
