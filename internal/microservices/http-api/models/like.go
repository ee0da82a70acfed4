package models

import "time"

// Like attaches to exactly one of a post or a comment. The composite
// unique indexes serialize concurrent toggles for the same (user,target)
// pair; the storage layer, not the application, owns that guarantee.
type Like struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post;uniqueIndex:idx_like_user_comment"`
	PostID    *int64    `json:"post_id,omitempty" gorm:"uniqueIndex:idx_like_user_post"`
	CommentID *int64    `json:"comment_id,omitempty" gorm:"uniqueIndex:idx_like_user_comment"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User    User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Post    *Post    `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	Comment *Comment `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
}

func (Like) TableName() string {
	return "likes"
}

// ReplyLike is a like on a standalone Reply, unique per (user, reply).
type ReplyLike struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_replylike_user_reply"`
	ReplyID   int64     `json:"reply_id" gorm:"not null;uniqueIndex:idx_replylike_user_reply"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Reply Reply `json:"-" gorm:"foreignKey:ReplyID;constraint:OnDelete:CASCADE;"`
}

func (ReplyLike) TableName() string {
	return "reply_likes"
}
