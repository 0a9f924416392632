package autogroup

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/controller/enrolment"
	"github.com/autogroup-lms/autogroup/internal/db/controller/groupingset"
	"github.com/autogroup-lms/autogroup/internal/db/models"
)

// CourseContext aggregates every grouping set of one course so callers
// can reconcile the whole course in one pass.
type CourseContext struct {
	courseID uint64
	sets     []*GroupingSet
}

// LoadCourse loads every grouping set of the course. Malformed set rows
// are logged and skipped rather than failing the whole course.
func LoadCourse(db *gorm.DB, courseID uint64) (*CourseContext, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if courseID == 0 {
		return nil, ErrInvalidCourse
	}

	rows, err := groupingset.GetForCourse(db, courseID)
	if err != nil {
		return nil, err
	}

	c := &CourseContext{
		courseID: courseID,
		sets:     make([]*GroupingSet, 0, len(rows)),
	}

	for _, row := range rows {
		set, err := LoadSet(db, row)
		if err != nil {
			if errors.Is(err, ErrInvalidSet) {
				log.Warn().Uint64("set", row.ID).Uint64("course", courseID).
					Msg("skipping malformed grouping set")
				continue
			}

			return nil, err
		}

		c.sets = append(c.sets, set)
	}

	return c, nil
}

// CourseID returns the course this context belongs to.
func (c *CourseContext) CourseID() uint64 {
	return c.courseID
}

// Sets returns the loaded grouping sets in id order.
func (c *CourseContext) Sets() []*GroupingSet {
	return c.sets
}

// MembershipCounts returns the member count per managed group id across
// all sets of the course.
func (c *CourseContext) MembershipCounts() map[uint64]int {
	result := make(map[uint64]int)

	for _, set := range c.sets {
		for groupID, count := range set.MembershipCounts() {
			result[groupID] = count
		}
	}

	return result
}

// VerifyUserMembership reconciles one user against every set of the
// course. The user's role assignments are fetched once and shared
// across sets. A failing set is logged and does not stop the others.
func (c *CourseContext) VerifyUserMembership(
	db *gorm.DB,
	user *models.User,
	preserveManual bool,
) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	roleIDs, err := enrolment.RoleIDs(db, c.courseID, user.ID)
	if err != nil {
		return false, err
	}

	ok := true

	for _, set := range c.sets {
		if _, err := set.VerifyUserMembership(db, user, roleIDs, preserveManual); err != nil {
			log.Error().Err(err).
				Uint64("set", set.ID()).
				Uint64("user", user.ID).
				Msg("failed to verify user membership")

			ok = false
		}
	}

	return ok, nil
}

// VerifyAllMembership reconciles every enrolled user of the course
// against every set.
func (c *CourseContext) VerifyAllMembership(db *gorm.DB, preserveManual bool) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	users, err := enrolment.EnrolledUsers(db, c.courseID)
	if err != nil {
		return false, err
	}

	ok := true

	for i := range users {
		userOK, err := c.VerifyUserMembership(db, &users[i], preserveManual)
		if err != nil {
			return false, err
		}

		ok = ok && userOK
	}

	return ok, nil
}
