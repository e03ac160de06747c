package models

import "time"

// MaxCommunityDescriptionLen caps the community description column.
const MaxCommunityDescriptionLen = 1000

// Community represents a named community namespace. Names are unique across
// the whole platform.
type Community struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:120;not null;uniqueIndex" json:"name"`
	Description string `gorm:"size:1000" json:"description"`
	Picture     string `json:"picture"`
	// MemberCount is not persisted; computed at query time.
	MemberCount int       `gorm:"->" json:"user_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Community) TableName() string {
	return "communities"
}
