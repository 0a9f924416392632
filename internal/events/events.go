// Package events maps host platform events onto reconciliation use
// cases. Events arrive over the webhook endpoint; each type carries the
// ids the matching use case needs. The Origin field lets the handler
// ignore events caused by its own writes, which would otherwise loop.
package events

import (
	"errors"
)

// Event type tags accepted by the handler. Unknown tags are rejected.
const (
	TypeUserEnrolmentCreated = "user_enrolment_created"
	TypeGroupMemberAdded     = "group_member_added"
	TypeGroupMemberRemoved   = "group_member_removed"
	TypeUserUpdated          = "user_updated"
	TypeGroupCreated         = "group_created"
	TypeGroupUpdated         = "group_updated"
	TypeGroupDeleted         = "group_deleted"
	TypeRoleAssigned         = "role_assigned"
	TypeRoleUnassigned       = "role_unassigned"
	TypeRoleDeleted          = "role_deleted"
	TypeCourseCreated        = "course_created"
	TypeCourseRestored       = "course_restored"
	TypePositionUpdated      = "position_updated"
)

// OriginAutogroup marks events caused by the reconciler's own writes.
// The handler drops them unprocessed.
const OriginAutogroup = "autogroup"

// ErrUnknownEventType is returned for an event type the handler does
// not know.
var ErrUnknownEventType = errors.New("unknown event type")

// Event is one host platform event. Which id fields are meaningful
// depends on the type; ids that do not apply stay zero.
type Event struct {
	Type     string `json:"type" validate:"required"`
	Origin   string `json:"origin,omitempty"`
	UserID   uint64 `json:"user_id,omitempty"`
	CourseID uint64 `json:"course_id,omitempty"`
	GroupID  uint64 `json:"group_id,omitempty"`
	RoleID   uint64 `json:"role_id,omitempty"`
}
