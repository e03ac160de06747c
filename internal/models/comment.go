package models

import "time"

// Comment belongs to one post and one author. Like posts, the author
// reference survives user deletion as NULL.
type Comment struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	PostID uint   `gorm:"not null;index" json:"post_id"`
	Post   *Post  `gorm:"foreignKey:PostID" json:"post,omitempty"`
	UserID *uint  `gorm:"index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`

	AuthorRoleName        *string `gorm:"->" json:"author_role,omitempty"`
	AuthorRoleDisplayName *string `gorm:"->" json:"author_role_display_name,omitempty"`

	Reactions []CommentReaction `gorm:"foreignKey:CommentID" json:"reactions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
