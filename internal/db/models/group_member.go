package models

import "time"

// MemberComponentAutogroup marks membership rows written by the reconciler
// itself. Rows added by any other actor leave Component empty, which is
// what feeds the manual-membership bookkeeping.
const MemberComponentAutogroup = "autogroup"

// GroupMember represents the many-to-many relationship between users and groups.
type GroupMember struct {
	// ID is the unique identifier for the membership row.
	ID uint64 `gorm:"primaryKey"`
	// GroupID is the ID of the group in this membership.
	GroupID uint64 `gorm:"index:idx_member_group_user;not null"`
	// UserID is the ID of the user in this membership.
	UserID uint64 `gorm:"index:idx_member_group_user;index;not null"`
	// Component identifies which actor created the row; the reconciler
	// writes MemberComponentAutogroup.
	Component string `gorm:"size:100"`
	// CreatedAt is the timestamp when the user was added to the group (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the GroupMember model.
func (GroupMember) TableName() string {
	return "group_members"
}
