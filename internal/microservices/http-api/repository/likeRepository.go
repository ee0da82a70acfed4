package repository

import (
	"agriconnect/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(like *models.Like) error
	Delete(likeID int64) error
	GetByUserAndPost(userID string, postID int64) (*models.Like, error)
	GetByUserAndComment(userID string, commentID int64) (*models.Like, error)
	CountByPost(postID int64) (int64, error)
	CountByComment(commentID int64) (int64, error)
	ExistsByUserAndPost(userID string, postID int64) (bool, error)
	ExistsByUserAndComment(userID string, commentID int64) (bool, error)

	CreateReplyLike(like *models.ReplyLike) error
	DeleteReplyLike(likeID int64) error
	GetReplyLike(userID string, replyID int64) (*models.ReplyLike, error)
	CountByReply(replyID int64) (int64, error)
	ExistsByUserAndReply(userID string, replyID int64) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts a like. Callers must treat IsDuplicateKey errors as "the
// like already exists": the unique indexes serialize concurrent toggles.
func (r *likeRepository) Create(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *likeRepository) Delete(likeID int64) error {
	return r.db.Where("id = ?", likeID).Delete(&models.Like{}).Error
}

func (r *likeRepository) GetByUserAndPost(userID string, postID int64) (*models.Like, error) {
	var like models.Like
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) GetByUserAndComment(userID string, commentID int64) (*models.Like, error) {
	var like models.Like
	err := r.db.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) CountByPost(postID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *likeRepository) CountByComment(commentID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

func (r *likeRepository) ExistsByUserAndPost(userID string, postID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) ExistsByUserAndComment(userID string, commentID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) CreateReplyLike(like *models.ReplyLike) error {
	return r.db.Create(like).Error
}

func (r *likeRepository) DeleteReplyLike(likeID int64) error {
	return r.db.Where("id = ?", likeID).Delete(&models.ReplyLike{}).Error
}

func (r *likeRepository) GetReplyLike(userID string, replyID int64) (*models.ReplyLike, error) {
	var like models.ReplyLike
	err := r.db.Where("user_id = ? AND reply_id = ?", userID, replyID).First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) CountByReply(replyID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.ReplyLike{}).Where("reply_id = ?", replyID).Count(&count).Error
	return count, err
}

func (r *likeRepository) ExistsByUserAndReply(userID string, replyID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.ReplyLike{}).
		Where("user_id = ? AND reply_id = ?", userID, replyID).
		Count(&count).Error
	return count > 0, err
}
