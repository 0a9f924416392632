// Package rules implements the sort rule variants a grouping set can use.
// A rule maps a user onto zero or more group candidates; the closed Kind
// set replaces any runtime class lookup, so adding a variant is a
// compile-time visible change.
package rules

import (
	"encoding/json"
	"errors"
	"unicode"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/models"
)

// Kind tags one sort rule variant. The value is what gets stored in the
// grouping set row.
type Kind string

const (
	// KindProfileField groups by one of a fixed set of user profile attributes.
	KindProfileField Kind = "profile_field"
	// KindUserInfoField groups by a host-defined custom user field.
	KindUserInfoField Kind = "user_info_field"
	// KindPrimaryPosition groups by a facet of the user's primary position assignment.
	KindPrimaryPosition Kind = "primary_position"
)

var (
	// ErrUnknownRuleKind is returned when a rule tag does not match any variant.
	ErrUnknownRuleKind = errors.New("unknown sort rule kind")
)

// Config carries the variant-specific rule configuration. All current
// variants configure a single field selector.
type Config struct {
	Field string `json:"field"`
}

// ParseConfig decodes a serialized rule configuration.
func ParseConfig(raw string) (Config, error) {
	var cfg Config

	if raw == "" {
		return cfg, nil
	}

	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return Config{}, err //nolint:wrapcheck
	}

	return cfg, nil
}

// Serialize encodes the configuration for storage in a grouping set row.
func (c Config) Serialize() (string, error) {
	out, err := json.Marshal(c)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	return string(out), nil
}

// Candidate is one eligible group a rule proposes for a user: a stable
// key component plus a display name.
type Candidate struct {
	Key  string
	Name string
}

// Rule is the contract every sort rule variant implements. A rule that
// proposes no candidates for a user means "this user belongs in none of
// this rule's groups", which is not an error.
type Rule interface {
	// EligibleGroupsForUser returns the group candidates for a user, in
	// a stable order.
	EligibleGroupsForUser(db *gorm.DB, user *models.User) ([]Candidate, error)

	// ConfigIsValid reports whether the configuration selects an option
	// the variant accepts.
	ConfigIsValid(db *gorm.DB, cfg Config) bool

	// ConfigOptions returns the accepted option keys with display labels.
	ConfigOptions(db *gorm.DB) (map[string]string, error)

	// GroupingBy returns the name of the attribute currently grouped by,
	// or an empty string when unconfigured.
	GroupingBy(db *gorm.DB) string
}

// KnownKind reports whether the tag names a rule variant.
func KnownKind(tag string) bool {
	switch Kind(tag) {
	case KindProfileField, KindUserInfoField, KindPrimaryPosition:
		return true
	default:
		return false
	}
}

// New constructs the rule variant for a tag with its configuration.
func New(kind Kind, cfg Config) (Rule, error) {
	switch kind {
	case KindProfileField:
		return &ProfileField{cfg: cfg}, nil
	case KindUserInfoField:
		return &UserInfoField{cfg: cfg}, nil
	case KindPrimaryPosition:
		return &PrimaryPosition{cfg: cfg}, nil
	default:
		return nil, ErrUnknownRuleKind
	}
}

// friendlyName upper-cases the first rune of a raw attribute value for
// use as a group display name.
func friendlyName(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return value
	}

	return string(unicode.ToUpper(r)) + value[size:]
}
