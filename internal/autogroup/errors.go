package autogroup

import (
	"errors"
)

var (
	// ErrInvalidGroup is returned when a group candidate has no name or
	// its idnumber does not match the managed pattern.
	ErrInvalidGroup = errors.New("invalid group: requires a name and a managed idnumber")

	// ErrInvalidSet is returned when a grouping set row is malformed: no
	// course, an unknown rule tag or unreadable configuration.
	ErrInvalidSet = errors.New("invalid grouping set")

	// ErrInvalidCourse is returned when a course id is not positive.
	ErrInvalidCourse = errors.New("invalid course id")

	// ErrInvalidRuleConfig is returned when a rule configuration does not
	// validate against the selected rule's accepted options. The prior
	// configuration is kept in that case.
	ErrInvalidRuleConfig = errors.New("rule configuration is not valid for the selected rule")

	// ErrGroupNotFound is returned when a group row does not exist.
	ErrGroupNotFound = errors.New("group not found")

	// ErrGroupNotManaged is returned when a destructive operation is
	// attempted on a group the reconciler does not manage.
	ErrGroupNotManaged = errors.New("group is not managed by autogroup")

	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)
