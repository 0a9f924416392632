// Package groupingset provides row-level access to grouping sets and
// their eligible-role rows. Behaviour lives in the autogroup package;
// this package only answers queries other layers need without loading a
// full set aggregate.
package groupingset

import (
	"errors"

	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrSetNotFound is returned when a grouping set is not found.
	ErrSetNotFound = errors.New("grouping set not found")
)

// Get retrieves a grouping set row by id.
func Get(db *gorm.DB, id uint64) (*models.GroupingSet, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var row models.GroupingSet

	result := db.First(&row, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSetNotFound
		}

		return nil, result.Error
	}

	return &row, nil
}

// GetForCourse retrieves all grouping set rows of a course.
func GetForCourse(db *gorm.DB, courseID uint64) ([]models.GroupingSet, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rows []models.GroupingSet

	result := db.Where("course_id = ?", courseID).Order("id").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// ExistsForCourse reports whether a course already carries a grouping set.
func ExistsForCourse(db *gorm.DB, courseID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64

	result := db.Model(&models.GroupingSet{}).
		Where("course_id = ?", courseID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// RoleIDs retrieves the eligible role ids of a grouping set.
func RoleIDs(db *gorm.DB, setID uint64) ([]uint64, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roleIDs []uint64

	result := db.Model(&models.GroupingSetRole{}).
		Where("set_id = ?", setID).
		Order("role_id").
		Pluck("role_id", &roleIDs)
	if result.Error != nil {
		return nil, result.Error
	}

	return roleIDs, nil
}

// PurgeRole deletes every eligibility row that references a role, across
// all grouping sets. Used when the host deletes the role itself.
func PurgeRole(db *gorm.DB, roleID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Where("role_id = ?", roleID).
		Delete(&models.GroupingSetRole{}).Error
}
