package models

// ForumDiscussion is the slice of the host forum table the reconciler
// touches: when a user moves between managed groups their discussions
// are re-pointed at the new group, best effort.
type ForumDiscussion struct {
	// ID is the unique identifier for the discussion.
	ID uint64 `gorm:"primaryKey"`
	// CourseID is the course the discussion belongs to.
	CourseID uint64 `gorm:"index;not null"`
	// UserID is the discussion starter.
	UserID uint64 `gorm:"index;not null"`
	// GroupID is the group the discussion is keyed to.
	GroupID uint64 `gorm:"index"`
}

// TableName specifies the database table name for the ForumDiscussion model.
func (ForumDiscussion) TableName() string {
	return "forum_discussions"
}
