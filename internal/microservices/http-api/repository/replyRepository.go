package repository

import (
	"agriconnect/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ReplyRepository interface {
	Create(reply *models.Reply) error
	GetByID(replyID int64) (*models.Reply, error)
	GetByComment(commentID int64) ([]models.Reply, error)
}

type replyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(reply *models.Reply) error {
	return r.db.Create(reply).Error
}

func (r *replyRepository) GetByID(replyID int64) (*models.Reply, error) {
	var reply models.Reply
	err := r.db.Where("id = ?", replyID).
		Preload("User").
		First(&reply).Error
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetByComment retrieves a comment's standalone replies newest-first.
func (r *replyRepository) GetByComment(commentID int64) ([]models.Reply, error) {
	var replies []models.Reply
	err := r.db.Where("comment_id = ?", commentID).
		Preload("User").
		Order("created_at DESC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}
