// Package userinfo provides lookups for host-defined custom user fields.
package userinfo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrFieldNotFound is returned when a custom field does not exist.
	ErrFieldNotFound = errors.New("user info field not found")
)

// Fields retrieves all defined custom user fields.
func Fields(db *gorm.DB) ([]models.UserInfoField, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var fields []models.UserInfoField

	result := db.Order("id").Find(&fields)
	if result.Error != nil {
		return nil, result.Error
	}

	return fields, nil
}

// FieldName retrieves the display name of a custom field.
func FieldName(db *gorm.DB, fieldID uint64) (string, error) {
	if db == nil {
		return "", ErrDBNil
	}

	var field models.UserInfoField

	result := db.First(&field, fieldID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrFieldNotFound
		}

		return "", result.Error
	}

	return field.Name, nil
}

// Value retrieves the stored value of a custom field for a user. A
// missing row yields an empty string and no error.
func Value(db *gorm.DB, fieldID, userID uint64) (string, error) {
	if db == nil {
		return "", ErrDBNil
	}

	var data models.UserInfoData

	result := db.Where("field_id = ? AND user_id = ?", fieldID, userID).First(&data)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}

		return "", result.Error
	}

	return data.Data, nil
}
