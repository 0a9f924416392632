package autogroup

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/autogroup/rules"
	"github.com/autogroup-lms/autogroup/internal/db/controller/forum"
	"github.com/autogroup-lms/autogroup/internal/db/controller/groupingset"
	"github.com/autogroup-lms/autogroup/internal/db/models"
)

// GroupingSet is one configured grouping rule scoped to a course. It
// owns the groups it generated, the rule instance and the eligible-role
// set, and implements the membership reconciliation algorithm.
type GroupingSet struct {
	row    models.GroupingSet
	rule   rules.Rule
	cfg    rules.Config
	roles  []uint64
	groups []*Group
}

// NewSet creates an unsaved grouping set for a course with the given
// rule variant and an empty configuration.
func NewSet(courseID uint64, kind rules.Kind) (*GroupingSet, error) {
	if courseID == 0 {
		return nil, ErrInvalidCourse
	}

	rule, err := rules.New(kind, rules.Config{})
	if err != nil {
		return nil, err
	}

	return &GroupingSet{
		row: models.GroupingSet{
			CourseID: courseID,
			SortRule: string(kind),
		},
		rule: rule,
	}, nil
}

// LoadSet validates a grouping set row and builds the full aggregate:
// rule instance, eligible roles and owned groups. Malformed rows fail
// with ErrInvalidSet so aggregate loaders can drop them.
func LoadSet(db *gorm.DB, row models.GroupingSet) (*GroupingSet, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if row.CourseID == 0 || !rules.KnownKind(row.SortRule) {
		return nil, ErrInvalidSet
	}

	cfg, err := rules.ParseConfig(row.SortConfig)
	if err != nil {
		return nil, ErrInvalidSet
	}

	rule, err := rules.New(rules.Kind(row.SortRule), cfg)
	if err != nil {
		return nil, ErrInvalidSet
	}

	s := &GroupingSet{
		row:  row,
		rule: rule,
		cfg:  cfg,
	}

	if s.row.ID != 0 {
		if err := s.loadGroups(db); err != nil {
			return nil, err
		}

		if s.roles, err = groupingset.RoleIDs(db, s.row.ID); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ID returns the set id, zero until saved.
func (s *GroupingSet) ID() uint64 {
	return s.row.ID
}

// CourseID returns the owning course id.
func (s *GroupingSet) CourseID() uint64 {
	return s.row.CourseID
}

// RuleKind returns the tag of the active rule variant.
func (s *GroupingSet) RuleKind() rules.Kind {
	return rules.Kind(s.row.SortRule)
}

// GroupingBy returns the attribute name the set currently groups by, or
// an empty string when unconfigured.
func (s *GroupingSet) GroupingBy(db *gorm.DB) string {
	return s.rule.GroupingBy(db)
}

// ConfigOptions returns the option set of the active rule, for editors.
func (s *GroupingSet) ConfigOptions(db *gorm.DB) (map[string]string, error) {
	return s.rule.ConfigOptions(db)
}

// Groups returns the owned groups in load order.
func (s *GroupingSet) Groups() []*Group {
	return s.groups
}

// GroupCount returns the count of owned groups.
func (s *GroupingSet) GroupCount() int {
	return len(s.groups)
}

// MembershipCounts returns the member count per owned group id.
func (s *GroupingSet) MembershipCounts() map[uint64]int {
	result := make(map[uint64]int, len(s.groups))
	for _, group := range s.groups {
		result[group.ID()] = group.MembershipCount()
	}

	return result
}

// EligibleRoles returns the role ids that make a user subject to this set.
func (s *GroupingSet) EligibleRoles() []uint64 {
	return s.roles
}

// SetRule switches the set to a different rule variant, resetting the
// configuration. Switching to the already active variant is a no-op.
func (s *GroupingSet) SetRule(kind rules.Kind) error {
	if string(kind) == s.row.SortRule {
		return nil
	}

	rule, err := rules.New(kind, rules.Config{})
	if err != nil {
		return err
	}

	s.row.SortRule = string(kind)
	s.cfg = rules.Config{}
	s.rule = rule

	return nil
}

// SetOptions applies a new rule configuration. A configuration the
// active rule does not accept is rejected with ErrInvalidRuleConfig and
// the prior configuration stays in effect.
func (s *GroupingSet) SetOptions(db *gorm.DB, cfg rules.Config) error {
	if !s.rule.ConfigIsValid(db, cfg) {
		return ErrInvalidRuleConfig
	}

	rule, err := rules.New(rules.Kind(s.row.SortRule), cfg)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.rule = rule

	return nil
}

// SetEligibleRoles replaces the eligible-role set. For a saved set the
// delta against the persisted rows is written immediately; only added
// and removed rows are touched. Reports whether anything changed so
// callers can decide to re-run reconciliation.
func (s *GroupingSet) SetEligibleRoles(db *gorm.DB, newRoles []uint64) (bool, error) {
	s.roles = append([]uint64(nil), newRoles...)

	if s.row.ID == 0 {
		return len(newRoles) > 0, nil
	}

	return s.saveRoles(db)
}

// Save upserts the grouping set row and persists the eligible-role
// delta. Timestamps are recomputed by the persistence layer: modified
// on every save, created only on first persist.
func (s *GroupingSet) Save(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	serialized, err := s.cfg.Serialize()
	if err != nil {
		return err
	}

	s.row.SortConfig = serialized

	if err := db.Save(&s.row).Error; err != nil {
		return err
	}

	_, err = s.saveRoles(db)

	return err
}

// Delete removes the grouping set. With cleanupGroups the owned groups
// are removed entirely; otherwise they are disassociated (idnumber
// cleared, membership preserved). Eligibility rows and the set row
// itself go away in both cases.
func (s *GroupingSet) Delete(db *gorm.DB, cleanupGroups bool) error {
	if db == nil {
		return ErrDBNil
	}

	if s.row.ID == 0 {
		return ErrInvalidSet
	}

	if err := db.Where("set_id = ?", s.row.ID).
		Delete(&models.GroupingSetRole{}).Error; err != nil {
		return err
	}

	for _, group := range s.groups {
		if cleanupGroups {
			if err := group.Remove(db); err != nil {
				return err
			}
		} else {
			if err := group.Disassociate(db); err != nil {
				return err
			}
		}
	}

	s.groups = nil

	return db.Delete(&models.GroupingSet{}, s.row.ID).Error
}

// VerifyUserMembership reconciles one user against this set. The user
// is subject to the rule only when their role assignments intersect the
// eligible-role set; an ineligible user still goes through the removal
// pass so stale memberships are cleaned up.
func (s *GroupingSet) VerifyUserMembership(
	db *gorm.DB,
	user *models.User,
	userRoleIDs []uint64,
	preserveManual bool,
) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var (
		candidates []rules.Candidate
		err        error
	)

	if s.userIsEligible(userRoleIDs) {
		candidates, err = s.rule.EligibleGroupsForUser(db, user)
		if err != nil {
			return false, err
		}
	}

	valid := make(map[uint64]bool, len(candidates))

	var newGroupID uint64

	for _, candidate := range candidates {
		group, created, err := s.ensureGroup(db, candidate)
		if err != nil {
			return false, err
		}

		valid[group.ID()] = true

		if _, err := group.EnsureMember(db, user.ID); err != nil {
			return false, err
		}

		if newGroupID == 0 || created {
			newGroupID = group.ID()
		}
	}

	// run through the remaining owned groups and ensure the user is not
	// a member
	for _, group := range s.groups {
		if valid[group.ID()] {
			continue
		}

		removed, err := group.EnsureNotMember(db, user.ID, preserveManual)
		if err != nil {
			return false, err
		}

		if removed && newGroupID != 0 {
			// best effort: keep discussion group references pointing at
			// the user's current group
			if err := forum.RepointDiscussions(db, s.row.CourseID, user.ID, group.ID(), newGroupID); err != nil {
				log.Warn().Err(err).
					Uint64("user", user.ID).
					Uint64("old_group", group.ID()).
					Uint64("new_group", newGroupID).
					Msg("failed to re-point forum discussions")
			}
		}
	}

	return true, nil
}

// ensureGroup resolves the backing group for a candidate: an exact
// idnumber match is renamed in place when the label changed, otherwise
// a new group is created and persisted.
func (s *GroupingSet) ensureGroup(db *gorm.DB, candidate rules.Candidate) (*Group, bool, error) {
	idnumber := IDNumber(s.row.ID, candidate.Key)

	for _, group := range s.groups {
		if group.IDNumber() != idnumber {
			continue
		}

		if group.Name() != candidate.Name {
			group.Rename(candidate.Name)

			if err := group.Update(db); err != nil {
				return nil, false, err
			}
		}

		return group, false, nil
	}

	group, err := NewGroup(models.Group{
		CourseID: s.row.CourseID,
		IDNumber: idnumber,
		Name:     candidate.Name,
	})
	if err != nil {
		return nil, false, err
	}

	if err := group.Create(db); err != nil {
		return nil, false, err
	}

	s.groups = append(s.groups, group)

	return group, true, nil
}

func (s *GroupingSet) userIsEligible(userRoleIDs []uint64) bool {
	for _, roleID := range userRoleIDs {
		for _, eligible := range s.roles {
			if roleID == eligible {
				return true
			}
		}
	}

	return false
}

// loadGroups discovers the owned groups by the set's idnumber prefix,
// scoped to the course. Rows that fail group validation are skipped.
func (s *GroupingSet) loadGroups(db *gorm.DB) error {
	var groupRows []models.Group

	result := db.
		Where("course_id = ? AND idnumber LIKE ?", s.row.CourseID, IDNumberPrefix(s.row.ID)+"%").
		Order("id").
		Find(&groupRows)
	if result.Error != nil {
		return result.Error
	}

	s.groups = make([]*Group, 0, len(groupRows))

	for _, groupRow := range groupRows {
		group, err := WrapGroup(db, groupRow)
		if err != nil {
			log.Debug().Err(err).Uint64("group", groupRow.ID).Msg("skipping invalid group row")
			continue
		}

		s.groups = append(s.groups, group)
	}

	return nil
}

// saveRoles writes the symmetric difference between the persisted
// eligible roles and the in-memory set.
func (s *GroupingSet) saveRoles(db *gorm.DB) (bool, error) {
	if s.row.ID == 0 {
		return false, ErrInvalidSet
	}

	existing, err := groupingset.RoleIDs(db, s.row.ID)
	if err != nil {
		return false, err
	}

	toRemove := make(map[uint64]bool, len(existing))
	for _, roleID := range existing {
		toRemove[roleID] = true
	}

	var toAdd []models.GroupingSetRole

	for _, roleID := range s.roles {
		if toRemove[roleID] {
			delete(toRemove, roleID)
			continue
		}

		toAdd = append(toAdd, models.GroupingSetRole{
			SetID:  s.row.ID,
			RoleID: roleID,
		})
	}

	changed := false

	if len(toRemove) > 0 {
		removeIDs := make([]uint64, 0, len(toRemove))
		for roleID := range toRemove {
			removeIDs = append(removeIDs, roleID)
		}

		if err := db.Where("set_id = ? AND role_id IN ?", s.row.ID, removeIDs).
			Delete(&models.GroupingSetRole{}).Error; err != nil {
			return false, err
		}

		changed = true
	}

	if len(toAdd) > 0 {
		if err := db.Create(&toAdd).Error; err != nil {
			return false, err
		}

		changed = true
	}

	return changed, nil
}
