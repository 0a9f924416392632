// Package hierarchy provides lookups against the host's organisation and
// position hierarchy, as consumed by the primary-position sort rule.
package hierarchy

import (
	"errors"

	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// PrimaryAssignment retrieves the user's primary position assignment, or
// nil when the user has none.
func PrimaryAssignment(db *gorm.DB, userID uint64) (*models.PositionAssignment, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var assignment models.PositionAssignment

	result := db.Where("user_id = ? AND `primary` = ?", userID, true).First(&assignment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, result.Error
	}

	return &assignment, nil
}

// OrganisationName retrieves the full name of an organisation, or an
// empty string when it does not exist.
func OrganisationName(db *gorm.DB, id uint64) (string, error) {
	if db == nil {
		return "", ErrDBNil
	}

	var org models.Organisation

	result := db.First(&org, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}

		return "", result.Error
	}

	return org.FullName, nil
}

// PositionName retrieves the full name of a position, or an empty string
// when it does not exist.
func PositionName(db *gorm.DB, id uint64) (string, error) {
	if db == nil {
		return "", ErrDBNil
	}

	var pos models.Position

	result := db.First(&pos, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}

		return "", result.Error
	}

	return pos.FullName, nil
}

// ManagerName retrieves the "First Last" name of a manager by user id, or
// an empty string when the user does not exist.
func ManagerName(db *gorm.DB, id uint64) (string, error) {
	if db == nil {
		return "", ErrDBNil
	}

	var manager models.User

	result := db.First(&manager, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}

		return "", result.Error
	}

	return manager.FirstName + " " + manager.LastName, nil
}
