package models

import "time"

// GroupingSet represents one configured grouping rule scoped to a course.
// A course may technically carry several sets, though the default flows
// assume one. Each set stores the tag of the sort rule it uses plus the
// rule configuration as a JSON blob.
type GroupingSet struct {
	// ID is the unique identifier for the grouping set.
	ID uint64 `gorm:"primaryKey"`
	// CourseID is the course this set belongs to.
	CourseID uint64 `gorm:"index;not null"`
	// SortRule is the tag of the sort rule variant (e.g. "profile_field").
	SortRule string `gorm:"size:100;not null"`
	// SortConfig is the serialized rule configuration.
	SortConfig string `gorm:"size:255"`
	// CreatedAt is the timestamp when the set was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the set was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the GroupingSet model.
func (GroupingSet) TableName() string {
	return "grouping_sets"
}
