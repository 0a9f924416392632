package models

// RoleAssignment links a user to a role within a course.
type RoleAssignment struct {
	// ID is the unique identifier for the assignment.
	ID uint64 `gorm:"primaryKey"`
	// CourseID is the course scope of the assignment.
	CourseID uint64 `gorm:"index:idx_assignment_course_user;not null"`
	// UserID is the assigned user.
	UserID uint64 `gorm:"index:idx_assignment_course_user;not null"`
	// RoleID is the assigned role.
	RoleID uint64 `gorm:"index;not null"`
}

// TableName specifies the database table name for the RoleAssignment model.
func (RoleAssignment) TableName() string {
	return "role_assignments"
}
