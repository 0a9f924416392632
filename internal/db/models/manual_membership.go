package models

import "time"

// ManualMembership records that a user was added to a managed group by an
// actor other than the reconciler. While the record exists the reconciler
// will not remove the user from the group automatically (when the
// preserve-manual setting is on).
type ManualMembership struct {
	// ID is the unique identifier for the record.
	ID uint64 `gorm:"primaryKey"`
	// UserID is the manually added user.
	UserID uint64 `gorm:"index:idx_manual_user_group;not null"`
	// GroupID is the group the user was manually added to.
	GroupID uint64 `gorm:"index:idx_manual_user_group;index;not null"`
	// CreatedAt is the timestamp when the record was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the ManualMembership model.
func (ManualMembership) TableName() string {
	return "manual_memberships"
}
