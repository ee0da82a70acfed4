package models

import "time"

// ReactionTypes are the accepted values for Reaction.ReactionType.
var ReactionTypes = []string{"like", "love", "haha", "wow", "sad", "angry"}

// Reaction is a typed reaction on a post; a user has at most one per post.
type Reaction struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reaction_user_post"`
	PostID       int64     `json:"post_id" gorm:"not null;uniqueIndex:idx_reaction_user_post"`
	ReactionType string    `json:"reaction_type" gorm:"size:10;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Post Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
}

func (Reaction) TableName() string {
	return "reactions"
}

// IsValidReactionType reports whether t is one of the accepted types.
func IsValidReactionType(t string) bool {
	for _, rt := range ReactionTypes {
		if rt == t {
			return true
		}
	}
	return false
}
