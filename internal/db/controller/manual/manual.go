// Package manual maintains the register of manually assigned group
// memberships. A row here shields the (user, group) pair from automatic
// removal while the preserve-manual setting is on.
package manual

import (
	"errors"

	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/models"
)

const userGroupQueryPattern = "user_id = ? AND group_id = ?"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Exists reports whether a manual membership record exists for the user and group.
func Exists(db *gorm.DB, userID, groupID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64

	result := db.Model(&models.ManualMembership{}).
		Where(userGroupQueryPattern, userID, groupID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// ExistsForGroup reports whether any manual membership record exists for the group.
func ExistsForGroup(db *gorm.DB, groupID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64

	result := db.Model(&models.ManualMembership{}).
		Where("group_id = ?", groupID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// Add records a manual membership for the user and group. Adding an
// already recorded pair is a no-op.
func Add(db *gorm.DB, userID, groupID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	exists, err := Exists(db, userID, groupID)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	record := models.ManualMembership{
		UserID:  userID,
		GroupID: groupID,
	}

	return db.Create(&record).Error
}

// Remove deletes the manual membership record for the user and group, if any.
func Remove(db *gorm.DB, userID, groupID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Where(userGroupQueryPattern, userID, groupID).
		Delete(&models.ManualMembership{}).Error
}

// RemoveForGroup deletes all manual membership records of a group.
func RemoveForGroup(db *gorm.DB, groupID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Where("group_id = ?", groupID).
		Delete(&models.ManualMembership{}).Error
}
