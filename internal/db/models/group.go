package models

import "time"

// Group represents one course group. Groups generated by the reconciler
// carry an IDNumber of the form "autogroup|<setID>|<key>"; a group whose
// IDNumber does not match that pattern is never touched automatically.
type Group struct {
	// ID is the unique identifier for the group.
	ID uint64 `gorm:"primaryKey"`
	// CourseID is the course this group belongs to.
	CourseID uint64 `gorm:"index;not null"`
	// IDNumber is the derived key marking a group as managed. Empty for
	// groups that were disassociated from their grouping set.
	IDNumber string `gorm:"column:idnumber;size:255;index"`
	// Name is the display name of the group.
	Name string `gorm:"size:255;not null"`
	// Description provides a human-readable explanation of the group.
	Description string `gorm:"size:255"`
	// Picture and HidePicture are carried through for the host UI and
	// have no meaning to reconciliation.
	Picture     int
	HidePicture int
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Group model.
func (Group) TableName() string {
	return "groups"
}
