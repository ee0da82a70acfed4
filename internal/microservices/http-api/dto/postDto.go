package dto

import (
	"time"

	"agriconnect/internal/microservices/http-api/models"
)

// CreatePostDTO arrives as multipart form data; the image file is read
// separately by the handler.
type CreatePostDTO struct {
	Caption string `form:"caption" binding:"required,min=1,max=5000"`
}

type UpdatePostDTO struct {
	Caption string `json:"caption" binding:"required,min=1,max=5000"`
}

type ReactionResponse struct {
	ID           int64     `json:"id"`
	User         string    `json:"user"`
	PostID       int64     `json:"post"`
	ReactionType string    `json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromModelToReactionResponse(reaction *models.Reaction) ReactionResponse {
	return ReactionResponse{
		ID:           reaction.ID,
		User:         reaction.User.Username,
		PostID:       reaction.PostID,
		ReactionType: reaction.ReactionType,
		CreatedAt:    reaction.CreatedAt,
	}
}

type PostResponse struct {
	ID           int64              `json:"id"`
	User         UserResponse       `json:"user"`
	Caption      string             `json:"caption"`
	Image        *string            `json:"image,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	Comments     []CommentResponse  `json:"comments"`
	IsLiked      bool               `json:"is_liked"`
	LikeCount    int64              `json:"like_count"`
	Reactions    []ReactionResponse `json:"reactions"`
	CommentCount int64              `json:"comment_count"`
}

// PaginatedPostResponse for returning the newest-first feed
type PaginatedPostResponse struct {
	Data       []PostResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

func NewPaginatedPostResponse(data []PostResponse, total, page, pageSize int) *PaginatedPostResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedPostResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
