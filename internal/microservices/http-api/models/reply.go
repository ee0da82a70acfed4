package models

import "time"

// Reply is the standalone reply mechanism attached directly to a comment.
// It coexists with child comments (Comment.ParentID); see DESIGN.md.
type Reply struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CommentID int64     `json:"comment_id" gorm:"not null;index"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User    User        `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Comment Comment     `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
	Likes   []ReplyLike `json:"-" gorm:"foreignKey:ReplyID;constraint:OnDelete:CASCADE;"`
}

func (Reply) TableName() string {
	return "replies"
}
