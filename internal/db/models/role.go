package models

import "time"

// Role represents a host role (e.g. "student", "teacher"). Role
// assignments in a course decide whether a user is subject to a
// grouping set.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint64 `gorm:"primaryKey"`
	// Name is the unique name of the role.
	Name string `gorm:"unique;size:100;not null"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:255"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}
