package rules

import (
	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/models"
)

// profileFieldOptions is the fixed set of profile attributes a grouping
// set may group by.
var profileFieldOptions = map[string]string{ //nolint:gochecknoglobals
	"auth":        "Authentication method",
	"department":  "Department",
	"institution": "Institution",
	"lang":        "Preferred language",
	"city":        "City",
}

// ProfileField groups users by one of a fixed set of built-in profile
// attributes. An unset or empty attribute places the user in no group.
type ProfileField struct {
	cfg Config
}

// EligibleGroupsForUser returns at most one candidate keyed by the raw
// attribute value.
func (r *ProfileField) EligibleGroupsForUser(_ *gorm.DB, user *models.User) ([]Candidate, error) {
	value := profileFieldValue(user, r.cfg.Field)
	if value == "" {
		return nil, nil
	}

	return []Candidate{{Key: value, Name: friendlyName(value)}}, nil
}

// ConfigIsValid reports whether the configured field is one of the
// accepted profile attributes.
func (r *ProfileField) ConfigIsValid(_ *gorm.DB, cfg Config) bool {
	_, ok := profileFieldOptions[cfg.Field]
	return ok
}

// ConfigOptions returns the accepted profile attributes with labels.
func (r *ProfileField) ConfigOptions(_ *gorm.DB) (map[string]string, error) {
	options := make(map[string]string, len(profileFieldOptions))
	for k, v := range profileFieldOptions {
		options[k] = v
	}

	return options, nil
}

// GroupingBy returns the configured attribute name.
func (r *ProfileField) GroupingBy(_ *gorm.DB) string {
	return r.cfg.Field
}

func profileFieldValue(user *models.User, field string) string {
	switch field {
	case "auth":
		return user.Auth
	case "department":
		return user.Department
	case "institution":
		return user.Institution
	case "lang":
		return user.Lang
	case "city":
		return user.City
	default:
		return ""
	}
}
