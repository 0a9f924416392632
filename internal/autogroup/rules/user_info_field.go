package rules

import (
	"strconv"

	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/controller/userinfo"
	"github.com/autogroup-lms/autogroup/internal/db/models"
)

// UserInfoField groups users by a host-defined custom user field. The
// configuration stores the field id as a decimal string.
type UserInfoField struct {
	cfg Config
}

// EligibleGroupsForUser looks up the user's stored value for the
// configured field and returns at most one candidate keyed by it.
func (r *UserInfoField) EligibleGroupsForUser(db *gorm.DB, user *models.User) ([]Candidate, error) {
	fieldID, err := strconv.ParseUint(r.cfg.Field, 10, 64)
	if err != nil {
		// unconfigured or not a field id: no candidates
		return nil, nil //nolint:nilerr
	}

	value, err := userinfo.Value(db, fieldID, user.ID)
	if err != nil {
		return nil, err
	}

	if value == "" {
		return nil, nil
	}

	return []Candidate{{Key: value, Name: friendlyName(value)}}, nil
}

// ConfigIsValid reports whether the configured field id names a defined
// custom field.
func (r *UserInfoField) ConfigIsValid(db *gorm.DB, cfg Config) bool {
	options, err := r.ConfigOptions(db)
	if err != nil {
		return false
	}

	_, ok := options[cfg.Field]

	return ok
}

// ConfigOptions enumerates the defined custom fields, keyed by id.
func (r *UserInfoField) ConfigOptions(db *gorm.DB) (map[string]string, error) {
	fields, err := userinfo.Fields(db)
	if err != nil {
		return nil, err
	}

	options := make(map[string]string, len(fields))
	for _, field := range fields {
		options[strconv.FormatUint(field.ID, 10)] = field.Name
	}

	return options, nil
}

// GroupingBy resolves the display name of the configured field, or an
// empty string when unconfigured or the field no longer exists.
func (r *UserInfoField) GroupingBy(db *gorm.DB) string {
	fieldID, err := strconv.ParseUint(r.cfg.Field, 10, 64)
	if err != nil {
		return ""
	}

	name, err := userinfo.FieldName(db, fieldID)
	if err != nil {
		return ""
	}

	return name
}
