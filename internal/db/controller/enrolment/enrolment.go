// Package enrolment answers the enrollment questions reconciliation
// needs: who is enrolled on a course, which roles a user holds there,
// and which of a user's courses carry a grouping set at all.
package enrolment

import (
	"errors"

	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// EnrolledUsers retrieves all users enrolled on a course.
func EnrolledUsers(db *gorm.DB, courseID uint64) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var users []models.User

	result := db.
		Joins("JOIN enrolments ON enrolments.user_id = users.id").
		Where("enrolments.course_id = ?", courseID).
		Order("users.id").
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// RoleIDs retrieves the role ids assigned to a user within a course.
func RoleIDs(db *gorm.DB, courseID, userID uint64) ([]uint64, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roleIDs []uint64

	result := db.Model(&models.RoleAssignment{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Order("role_id").
		Pluck("role_id", &roleIDs)
	if result.Error != nil {
		return nil, result.Error
	}

	return roleIDs, nil
}

// CourseIDsWithSetForUser retrieves the ids of all courses the user is
// enrolled on which carry at least one grouping set.
func CourseIDsWithSetForUser(db *gorm.DB, userID uint64) ([]uint64, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var courseIDs []uint64

	result := db.Model(&models.Enrolment{}).
		Distinct("enrolments.course_id").
		Joins("JOIN grouping_sets ON grouping_sets.course_id = enrolments.course_id").
		Where("enrolments.user_id = ?", userID).
		Order("enrolments.course_id").
		Pluck("enrolments.course_id", &courseIDs)
	if result.Error != nil {
		return nil, result.Error
	}

	return courseIDs, nil
}
