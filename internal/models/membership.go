package models

import "time"

// Membership maps users to communities and tracks their role there. The
// composite primary key is what guarantees at most one role per user per
// community; role assignment is an upsert against this key.
type Membership struct {
	UserID      uint       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CommunityID uint       `gorm:"primaryKey;autoIncrement:false" json:"community_id"`
	Community   *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
	RoleID      uint       `gorm:"not null" json:"role_id"`
	Role        *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RosterEntry is one row of the "members with resolved role" view. Role
// fields are nil when the membership points at a role the catalog cannot
// resolve.
type RosterEntry struct {
	UserID          uint    `json:"id"`
	Username        string  `json:"username"`
	Picture         string  `json:"picture"`
	RoleName        *string `json:"role"`
	RoleDisplayName *string `json:"role_display_name"`
}
