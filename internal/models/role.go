package models

// Role names known to the platform. The catalog is reference data: seeded
// once, never redefined at runtime.
const (
	RoleCommunityFounder    = "community_founder"
	RoleSystemAdministrator = "system_administrator"
	RoleModerator           = "moderator"
	RoleMember              = "member"
)

// Role is a row in the static role catalog.
type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:40;not null;uniqueIndex" json:"name"`
	DisplayName string `gorm:"size:80;not null" json:"display_name"`
}
