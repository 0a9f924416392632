package config

import (
	"github.com/autogroup-lms/autogroup/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Autogroup Autogroup
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain       string // domain name for the webserver
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
}

// Autogroup holds the behaviour settings for the reconciler itself.
// These mirror the administrative switches of the plugin: a global
// enable flag, per-event listen toggles and the defaults used when a
// grouping set is auto-provisioned for a new course.
type Autogroup struct {
	// Enabled globally switches reconciliation on or off. When false all
	// use cases no-op and report no change.
	Enabled bool

	// PreserveManual stops the reconciler from removing users who were
	// added to a managed group by somebody else.
	PreserveManual bool

	// Listen toggles, one per reacted-to event family.
	ListenForRoleChanges         bool
	ListenForGroupChanges        bool
	ListenForGroupMembership     bool
	ListenForUserProfileChanges  bool
	ListenForUserPositionChanges bool

	// AddToNewCourses provisions a default grouping set when a course is
	// created; AddToRestoredCourses does the same on course restore.
	AddToNewCourses      bool
	AddToRestoredCourses bool

	// DefaultRule and DefaultField seed auto-provisioned grouping sets.
	DefaultRule  string
	DefaultField string

	// DefaultEligibleRoles are the role ids that make a user subject to
	// an auto-provisioned grouping set.
	DefaultEligibleRoles []uint64
}

// DB holds the database configuration settings.
type DB struct {
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}
