package repository

import (
	"agriconnect/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(commentID int64) error
	GetByID(commentID int64) (*models.Comment, error)
	GetTopLevelByPost(postID int64) ([]models.Comment, error)
	GetChildren(commentID int64) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update an existing comment
func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete a comment; child comments, replies and likes cascade at the
// database level.
func (r *commentRepository) Delete(commentID int64) error {
	return r.db.Where("id = ?", commentID).Delete(&models.Comment{}).Error
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ?", commentID).
		Preload("User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetTopLevelByPost retrieves a post's parentless comments newest-first.
func (r *commentRepository) GetTopLevelByPost(postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ? AND parent_id IS NULL", postID).
		Preload("User").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetChildren retrieves the child comments of a comment newest-first.
func (r *commentRepository) GetChildren(commentID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("parent_id = ?", commentID).
		Preload("User").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
