package models

import "time"

// ReactionOutcome reports which branch of the reaction toggle ran.
type ReactionOutcome string

const (
	// ReactionCreated means no reaction existed for the pair and one was created.
	ReactionCreated ReactionOutcome = "created"
	// ReactionUpdated means an existing reaction switched to a different type.
	ReactionUpdated ReactionOutcome = "updated"
	// ReactionRemoved means the same type was resubmitted and toggled off.
	ReactionRemoved ReactionOutcome = "removed"
)

// PostReaction is a user's single reaction on a post.
// The combination of PostID and UserID must be unique.
type PostReaction struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	PostID       uint      `gorm:"not null;uniqueIndex:idx_post_reactions_post_user" json:"post_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_post_reactions_post_user" json:"user_id"`
	ReactionType string    `gorm:"size:30;not null" json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// CommentReaction is a user's single reaction on a comment.
// The combination of CommentID and UserID must be unique.
type CommentReaction struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	CommentID    uint      `gorm:"not null;uniqueIndex:idx_comment_reactions_comment_user" json:"comment_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_comment_reactions_comment_user" json:"user_id"`
	ReactionType string    `gorm:"size:30;not null" json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}
