package models

import "time"

// Enrolment links a user to a course they are enrolled on.
type Enrolment struct {
	// ID is the unique identifier for the enrolment.
	ID uint64 `gorm:"primaryKey"`
	// CourseID is the course the user is enrolled on.
	CourseID uint64 `gorm:"index:idx_enrolment_course_user;not null"`
	// UserID is the enrolled user.
	UserID uint64 `gorm:"index:idx_enrolment_course_user;index;not null"`
	// CreatedAt is the timestamp when the enrolment was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the Enrolment model.
func (Enrolment) TableName() string {
	return "enrolments"
}
