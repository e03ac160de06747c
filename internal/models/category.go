package models

import "time"

// Category groups posts inside a community. Names are unique within their
// community, case-insensitively: NameKey holds the lowercased name and backs
// the composite unique index so the constraint survives concurrent creates.
//
// CommunityID is nullable so the configured community-delete policy can
// detach categories instead of destroying them.
type Category struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:120;not null" json:"name"`
	NameKey     string     `gorm:"size:120;not null;uniqueIndex:idx_categories_community_name_key" json:"-"`
	Description string     `gorm:"type:text" json:"description"`
	CommunityID *uint      `gorm:"index;uniqueIndex:idx_categories_community_name_key" json:"community_id"`
	Community   *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
	// PostCount is not persisted; computed at query time.
	PostCount int       `gorm:"->" json:"post_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
