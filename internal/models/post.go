package models

import "time"

// Post belongs to one category and one author. The author reference is
// nullable: deleting a user orphans their posts rather than cascading, so
// content removal stays an explicit, authorized action.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:300;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	UserID     *uint     `gorm:"index" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// Author role within the owning community; not persisted, filled by the
	// listing join when a community scope is known.
	AuthorRoleName        *string `gorm:"->" json:"author_role,omitempty"`
	AuthorRoleDisplayName *string `gorm:"->" json:"author_role_display_name,omitempty"`

	Reactions []PostReaction `gorm:"foreignKey:PostID" json:"reactions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
