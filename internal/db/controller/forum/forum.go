// Package forum re-points forum discussions when the reconciler moves a
// user between managed groups. This is a consistency aid only; callers
// treat failures as non-fatal.
package forum

import (
	"errors"

	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// RepointDiscussions moves the user's discussions in a course from the
// old group to the new one.
func RepointDiscussions(db *gorm.DB, courseID, userID, oldGroupID, newGroupID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Model(&models.ForumDiscussion{}).
		Where("course_id = ? AND user_id = ? AND group_id = ?", courseID, userID, oldGroupID).
		Update("group_id", newGroupID).Error
}
