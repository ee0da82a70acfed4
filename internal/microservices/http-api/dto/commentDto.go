package dto

import "time"

// CreateCommentDTO for creating a comment; Parent nests it under an
// existing comment on the same post.
type CreateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
	Parent  *int64 `json:"parent,omitempty"`
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// CreateReplyDTO for creating a standalone reply on a comment
type CreateReplyDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// SetReactionDTO for setting a user's reaction on a post
type SetReactionDTO struct {
	ReactionType string `json:"reaction_type" binding:"required,oneof=like love haha wow sad angry"`
}

// ReplyResponse covers both reply mechanisms: child comments and
// standalone Reply rows are rendered to the same shape.
type ReplyResponse struct {
	ID         int64        `json:"id"`
	User       UserResponse `json:"user"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"created_at"`
	LikesCount int64        `json:"likes_count"`
	IsLiked    bool         `json:"is_liked"`
}

type CommentResponse struct {
	ID         int64           `json:"id"`
	User       UserResponse    `json:"user"`
	Content    string          `json:"content"`
	CreatedAt  time.Time       `json:"created_at"`
	Parent     *int64          `json:"parent,omitempty"`
	Replies    []ReplyResponse `json:"replies"`
	LikesCount int64           `json:"likes_count"`
	IsLiked    bool            `json:"is_liked"`
}
