package repository

import (
	"agriconnect/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(postID int64) error
	GetByID(postID int64) (*models.Post, error)
	List(page, pageSize int) ([]models.Post, int64, error)
	CountComments(postID int64) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create a new post
func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update an existing post
func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete a post; comments, likes and reactions cascade at the database level.
func (r *postRepository) Delete(postID int64) error {
	return r.db.Where("id = ?", postID).Delete(&models.Post{}).Error
}

// GetByID retrieves a post by its ID
func (r *postRepository) GetByID(postID int64) (*models.Post, error) {
	var post models.Post
	err := r.db.Where("id = ?", postID).
		Preload("User").
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves posts newest-first with pagination
func (r *postRepository) List(page, pageSize int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := r.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.
		Preload("User").
		Preload("Reactions").
		Preload("Reactions.User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&posts).Error

	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// CountComments counts every comment on a post, nested ones included.
func (r *postRepository) CountComments(postID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
