package models

import "time"

// User mirrors the host user record with the profile attributes the sort
// rules may group by.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Username is the unique login name.
	Username string `gorm:"unique;size:100;not null"`
	// FirstName is the user's first name.
	FirstName string `gorm:"size:100"`
	// LastName is the user's last name.
	LastName string `gorm:"size:100"`
	// Auth is the authentication method (e.g. "manual", "ldap").
	Auth string `gorm:"size:50"`
	// Department is the user's department.
	Department string `gorm:"size:255"`
	// Institution is the user's institution.
	Institution string `gorm:"size:255"`
	// Lang is the user's preferred language.
	Lang string `gorm:"size:30"`
	// City is the user's city.
	City string `gorm:"size:120"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}
