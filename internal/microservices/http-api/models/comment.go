package models

import "time"

// Comment is a comment on a post. A comment with a non-nil ParentID is a
// reply to another comment on the same post; replies created through the
// standalone Reply model live in replies instead (see reply.go).
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	PostID    int64     `json:"post_id" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	ParentID  *int64    `json:"parent,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User     User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Post     Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	Children []Comment `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE;"`
	Replies  []Reply   `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
	Likes    []Like    `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
