// Package usecase bundles the reconciliation entry points invoked by
// event handling, the web API and the daemon. Every use case honours
// the global enable switch and returns (false, nil) when the feature is
// switched off.
package usecase

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/autogroup"
	"github.com/autogroup-lms/autogroup/internal/autogroup/rules"
	"github.com/autogroup-lms/autogroup/internal/config"
	"github.com/autogroup-lms/autogroup/internal/db/controller/enrolment"
	"github.com/autogroup-lms/autogroup/internal/db/controller/groupingset"
	"github.com/autogroup-lms/autogroup/internal/db/controller/manual"
	"github.com/autogroup-lms/autogroup/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// VerifyUserGroupMembership reconciles one user. With a positive
// courseID only that course is touched; with courseID zero every course
// the user is enrolled in that carries at least one grouping set is
// reconciled.
func VerifyUserGroupMembership(db *gorm.DB, cfg *config.Config, userID, courseID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	if !cfg.Autogroup.Enabled {
		return false, nil
	}

	var user models.User

	result := db.First(&user, userID)
	if result.Error != nil {
		return false, result.Error
	}

	courseIDs := []uint64{courseID}

	if courseID == 0 {
		var err error

		courseIDs, err = enrolment.CourseIDsWithSetForUser(db, userID)
		if err != nil {
			return false, err
		}
	}

	ok := true

	for _, id := range courseIDs {
		course, err := autogroup.LoadCourse(db, id)
		if err != nil {
			return false, err
		}

		courseOK, err := course.VerifyUserMembership(db, &user, cfg.Autogroup.PreserveManual)
		if err != nil {
			return false, err
		}

		ok = ok && courseOK
	}

	return ok, nil
}

// VerifyCourseGroupMembership reconciles every enrolled user of one
// course against all of its grouping sets.
func VerifyCourseGroupMembership(db *gorm.DB, cfg *config.Config, courseID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	if !cfg.Autogroup.Enabled {
		return false, nil
	}

	course, err := autogroup.LoadCourse(db, courseID)
	if err != nil {
		return false, err
	}

	return course.VerifyAllMembership(db, cfg.Autogroup.PreserveManual)
}

// VerifyGroupPopulation prunes the named group when it has been left
// behind empty. The group is removed only when it is still validly
// owned by an existing grouping set, has no members left and no manual
// membership record points at it; non-managed groups are left untouched
// no matter how empty they are.
func VerifyGroupPopulation(db *gorm.DB, cfg *config.Config, groupID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	if !cfg.Autogroup.Enabled {
		return false, nil
	}

	var row models.Group

	result := db.First(&row, groupID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, result.Error
	}

	group, err := autogroup.WrapGroup(db, row)
	if err != nil {
		if errors.Is(err, autogroup.ErrInvalidGroup) {
			return false, nil
		}

		return false, err
	}

	if group.MembershipCount() > 0 {
		return false, nil
	}

	valid, err := group.IsValidManaged(db)
	if err != nil {
		return false, err
	}

	if !valid {
		return false, nil
	}

	protected, err := manual.ExistsForGroup(db, groupID)
	if err != nil {
		return false, err
	}

	if protected {
		return false, nil
	}

	if err := group.Remove(db); err != nil {
		return false, err
	}

	log.Info().
		Uint64("group", groupID).
		Uint64("course", group.CourseID()).
		Msg("removed empty managed group")

	return true, nil
}

// AddDefaultToCourse provisions the configured default grouping set on
// a course that has none yet, then reconciles the course. A course that
// already carries a set is left alone.
func AddDefaultToCourse(db *gorm.DB, cfg *config.Config, courseID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	if !cfg.Autogroup.Enabled {
		return false, nil
	}

	exists, err := groupingset.ExistsForCourse(db, courseID)
	if err != nil {
		return false, err
	}

	if exists {
		return false, nil
	}

	set, err := autogroup.NewSet(courseID, rules.Kind(cfg.Autogroup.DefaultRule))
	if err != nil {
		return false, err
	}

	optErr := set.SetOptions(db, rules.Config{Field: cfg.Autogroup.DefaultField})
	if optErr != nil {
		// the set still works, it just groups nobody until configured
		log.Warn().Err(optErr).
			Uint64("course", courseID).
			Str("field", cfg.Autogroup.DefaultField).
			Msg("default field is not valid for the default rule")
	}

	if _, err := set.SetEligibleRoles(db, cfg.Autogroup.DefaultEligibleRoles); err != nil {
		return false, err
	}

	if err := set.Save(db); err != nil {
		return false, err
	}

	log.Info().
		Uint64("set", set.ID()).
		Uint64("course", courseID).
		Str("rule", string(set.RuleKind())).
		Msg("provisioned default grouping set")

	return VerifyCourseGroupMembership(db, cfg, courseID)
}
