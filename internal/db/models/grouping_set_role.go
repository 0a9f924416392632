package models

// GroupingSetRole links a grouping set to one eligible role. A user is
// subject to a grouping set only when one of their role assignments in
// the course matches an eligible role of the set.
type GroupingSetRole struct {
	// ID is the unique identifier for the row.
	ID uint64 `gorm:"primaryKey"`
	// SetID is the grouping set this eligibility row belongs to.
	SetID uint64 `gorm:"index;not null"`
	// RoleID is the eligible role.
	RoleID uint64 `gorm:"not null"`
}

// TableName specifies the database table name for the GroupingSetRole model.
func (GroupingSetRole) TableName() string {
	return "grouping_set_roles"
}
