package autogroup

import (
	"errors"

	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/controller/manual"
	"github.com/autogroup-lms/autogroup/internal/db/models"
)

// Group wraps one managed course group together with its loaded member
// set and owns the membership mutation operations.
type Group struct {
	row     models.Group
	members map[uint64]bool
}

// NewGroup validates a group candidate and wraps it. The candidate must
// carry a non-empty name and a managed idnumber; anything else fails
// with ErrInvalidGroup.
func NewGroup(row models.Group) (*Group, error) {
	if row.Name == "" || !IsManaged(row.IDNumber) {
		return nil, ErrInvalidGroup
	}

	return &Group{
		row:     row,
		members: make(map[uint64]bool),
	}, nil
}

// LoadGroup fetches a group row and its members. The row must validate
// as a managed group.
func LoadGroup(db *gorm.DB, id uint64) (*Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var row models.Group

	result := db.First(&row, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}

		return nil, result.Error
	}

	return WrapGroup(db, row)
}

// WrapGroup validates an already fetched row and loads its members.
func WrapGroup(db *gorm.DB, row models.Group) (*Group, error) {
	group, err := NewGroup(row)
	if err != nil {
		return nil, err
	}

	if err := group.loadMembers(db); err != nil {
		return nil, err
	}

	return group, nil
}

// ID returns the group id, zero until created.
func (g *Group) ID() uint64 {
	return g.row.ID
}

// CourseID returns the owning course id.
func (g *Group) CourseID() uint64 {
	return g.row.CourseID
}

// IDNumber returns the derived managed key.
func (g *Group) IDNumber() string {
	return g.row.IDNumber
}

// Name returns the display name.
func (g *Group) Name() string {
	return g.row.Name
}

// Rename changes the display name in memory; call Update to persist.
func (g *Group) Rename(name string) {
	g.row.Name = name
}

// Create persists the group if it has not been created yet. Calling it
// on an already created group is a no-op.
func (g *Group) Create(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	if g.row.ID != 0 {
		return nil
	}

	return db.Create(&g.row).Error
}

// Update persists display name and idnumber changes.
func (g *Group) Update(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	if g.row.ID == 0 {
		return ErrGroupNotFound
	}

	return db.Save(&g.row).Error
}

// EnsureMember adds the user to the group when they are not a member
// yet. Reports whether a row was added. Rows written here carry the
// autogroup component marker so external observers can tell them from
// manual additions.
func (g *Group) EnsureMember(db *gorm.DB, userID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	if g.members[userID] {
		return false, nil
	}

	member := models.GroupMember{
		GroupID:   g.row.ID,
		UserID:    userID,
		Component: models.MemberComponentAutogroup,
	}

	if err := db.Create(&member).Error; err != nil {
		return false, err
	}

	g.members[userID] = true

	return true, nil
}

// EnsureNotMember removes the user from the group when they are a
// member, unless a manual membership record shields them and
// preserveManual is on. Reports whether a row was removed.
func (g *Group) EnsureNotMember(db *gorm.DB, userID uint64, preserveManual bool) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	if !g.members[userID] {
		return false, nil
	}

	if preserveManual {
		protected, err := manual.Exists(db, userID, g.row.ID)
		if err != nil {
			return false, err
		}

		if protected {
			return false, nil
		}
	}

	result := db.Where("group_id = ? AND user_id = ?", g.row.ID, userID).
		Delete(&models.GroupMember{})
	if result.Error != nil {
		return false, result.Error
	}

	delete(g.members, userID)

	return true, nil
}

// MembershipCount returns the loaded member count.
func (g *Group) MembershipCount() int {
	return len(g.members)
}

// Remove deletes the group and its membership rows. Deleting a group
// the reconciler does not manage is refused.
func (g *Group) Remove(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	if !IsManaged(g.row.IDNumber) {
		return ErrGroupNotManaged
	}

	if err := db.Where("group_id = ?", g.row.ID).Delete(&models.GroupMember{}).Error; err != nil {
		return err
	}

	if err := manual.RemoveForGroup(db, g.row.ID); err != nil {
		return err
	}

	return db.Delete(&models.Group{}, g.row.ID).Error
}

// Disassociate permanently severs the group from its grouping set by
// clearing the idnumber. Membership is preserved; the group will never
// again be treated as managed even if recreated under the same name.
func (g *Group) Disassociate(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	err := db.Model(&models.Group{}).
		Where("id = ?", g.row.ID).
		Update("idnumber", "").Error
	if err != nil {
		return err
	}

	g.row.IDNumber = ""

	return nil
}

// IsValidManaged reports whether the group is managed and its owning
// grouping set still exists for the same course.
func (g *Group) IsValidManaged(db *gorm.DB) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	setID, ok := SetIDFromIDNumber(g.row.IDNumber)
	if !ok {
		return false, nil
	}

	var count int64

	result := db.Model(&models.GroupingSet{}).
		Where("id = ? AND course_id = ?", setID, g.row.CourseID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (g *Group) loadMembers(db *gorm.DB) error {
	var members []models.GroupMember

	result := db.Where("group_id = ?", g.row.ID).Find(&members)
	if result.Error != nil {
		return result.Error
	}

	g.members = make(map[uint64]bool, len(members))
	for _, member := range members {
		g.members[member.UserID] = true
	}

	return nil
}
