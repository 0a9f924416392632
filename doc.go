// Package main provides the entry point for the autogroup daemon.
// The daemon keeps course group membership synchronized with configurable
// grouping rules: each course may carry one or more grouping sets, a set
// maps enrolled users onto managed groups through a sort rule, and host
// lifecycle events (enrolments, profile edits, role changes, group edits)
// trigger reconciliation of the affected users, courses or groups. The
// application uses gorm for data persistence and receives events through
// a Fiber webhook endpoint.
package main
