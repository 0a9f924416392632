package events

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/autogroup"
	"github.com/autogroup-lms/autogroup/internal/autogroup/usecase"
	"github.com/autogroup-lms/autogroup/internal/config"
	"github.com/autogroup-lms/autogroup/internal/db/controller/groupingset"
	"github.com/autogroup-lms/autogroup/internal/db/controller/manual"
	"github.com/autogroup-lms/autogroup/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Handler dispatches host events to the matching use cases.
type Handler struct {
	db  *gorm.DB
	cfg *config.Config
}

// New creates an event handler bound to a database connection and the
// runtime configuration.
func New(db *gorm.DB, cfg *config.Config) *Handler {
	return &Handler{db: db, cfg: cfg}
}

// Handle processes one event. Reports whether reconciliation work was
// performed; events filtered by origin, by a listen toggle or by the
// global enable switch report false without error.
//
// Manual membership bookkeeping on group_member events happens before
// the listen toggles are consulted, so protection records stay accurate
// even while the matching toggle is off.
func (h *Handler) Handle(e Event) (bool, error) {
	if h.db == nil {
		return false, ErrDBNil
	}

	if !h.cfg.Autogroup.Enabled {
		return false, nil
	}

	if e.Origin == OriginAutogroup {
		log.Debug().Str("type", e.Type).Msg("ignoring own event")
		return false, nil
	}

	ag := h.cfg.Autogroup

	switch e.Type {
	case TypeUserEnrolmentCreated:
		// an enrolment implies a role grant, so it rides the role toggle
		if !ag.ListenForRoleChanges {
			return false, nil
		}

		return usecase.VerifyUserGroupMembership(h.db, h.cfg, e.UserID, e.CourseID)

	case TypeGroupMemberAdded:
		if err := h.recordManualAddition(e); err != nil {
			return false, err
		}

		if !ag.ListenForGroupMembership {
			return false, nil
		}

		return usecase.VerifyUserGroupMembership(h.db, h.cfg, e.UserID, e.CourseID)

	case TypeGroupMemberRemoved:
		if err := manual.Remove(h.db, e.UserID, e.GroupID); err != nil {
			return false, err
		}

		if !ag.ListenForGroupMembership {
			return false, nil
		}

		processed, err := usecase.VerifyUserGroupMembership(h.db, h.cfg, e.UserID, e.CourseID)
		if err != nil {
			return false, err
		}

		// the removal may have emptied the group
		if e.GroupID != 0 {
			if _, err := usecase.VerifyGroupPopulation(h.db, h.cfg, e.GroupID); err != nil {
				log.Warn().Err(err).Uint64("group", e.GroupID).Msg("orphan group check failed")
			}
		}

		return processed, nil

	case TypeUserUpdated:
		if !ag.ListenForUserProfileChanges {
			return false, nil
		}

		return usecase.VerifyUserGroupMembership(h.db, h.cfg, e.UserID, 0)

	case TypePositionUpdated:
		if !ag.ListenForUserPositionChanges {
			return false, nil
		}

		return usecase.VerifyUserGroupMembership(h.db, h.cfg, e.UserID, 0)

	case TypeGroupCreated, TypeGroupUpdated:
		if !ag.ListenForGroupChanges {
			return false, nil
		}

		return usecase.VerifyCourseGroupMembership(h.db, h.cfg, e.CourseID)

	case TypeGroupDeleted:
		// the deleted group takes its protection records with it
		if err := manual.RemoveForGroup(h.db, e.GroupID); err != nil {
			return false, err
		}

		if !ag.ListenForGroupChanges {
			return false, nil
		}

		return usecase.VerifyCourseGroupMembership(h.db, h.cfg, e.CourseID)

	case TypeRoleAssigned, TypeRoleUnassigned:
		if !ag.ListenForRoleChanges {
			return false, nil
		}

		return usecase.VerifyUserGroupMembership(h.db, h.cfg, e.UserID, e.CourseID)

	case TypeRoleDeleted:
		// eligibility rows referencing a deleted role are garbage either
		// way, so this runs regardless of the role-change toggle
		if err := groupingset.PurgeRole(h.db, e.RoleID); err != nil {
			return false, err
		}

		return true, nil

	case TypeCourseCreated:
		if !ag.AddToNewCourses {
			return false, nil
		}

		return usecase.AddDefaultToCourse(h.db, h.cfg, e.CourseID)

	case TypeCourseRestored:
		if !ag.AddToRestoredCourses {
			return false, nil
		}

		return usecase.AddDefaultToCourse(h.db, h.cfg, e.CourseID)

	default:
		return false, ErrUnknownEventType
	}
}

// recordManualAddition keeps a protection record when somebody other
// than the reconciler adds a user to a managed group.
func (h *Handler) recordManualAddition(e Event) error {
	var group models.Group

	result := h.db.First(&group, e.GroupID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil
		}

		return result.Error
	}

	if !autogroup.IsManaged(group.IDNumber) {
		return nil
	}

	return manual.Add(h.db, e.UserID, e.GroupID)
}
