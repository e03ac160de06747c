// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account known to the forum. Credentials are issued and
// verified by the external auth service; this row carries the profile fields
// the forum needs for rosters and author annotation, plus the global admin flag.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:60;unique;not null" json:"username"`
	Email     string    `gorm:"size:255;unique;not null" json:"email"`
	Picture   string    `json:"picture"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
