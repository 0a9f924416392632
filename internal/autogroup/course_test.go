package autogroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/models"
)

// enrolUser enrols a user on a course with the given roles.
func enrolUser(t *testing.T, db *gorm.DB, courseID uint64, user *models.User, roleIDs ...uint64) {
	t.Helper()

	require.NoError(t, db.Create(&models.Enrolment{CourseID: courseID, UserID: user.ID}).Error)

	for _, roleID := range roleIDs {
		require.NoError(t, db.Create(
			&models.RoleAssignment{CourseID: courseID, UserID: user.ID, RoleID: roleID},
		).Error)
	}
}

func TestLoadCourse(t *testing.T) {
	db := setupTestDB(t)

	seedSet(t, db, 1, "profile_field", `{"field":"department"}`, 1)
	seedSet(t, db, 1, "profile_field", `{"field":"city"}`, 1)

	// a malformed row must not break course loading
	require.NoError(t, db.Create(
		&models.GroupingSet{CourseID: 1, SortRule: "no_such_rule"},
	).Error)

	// another course's set stays out
	seedSet(t, db, 2, "profile_field", `{"field":"department"}`, 1)

	course, err := LoadCourse(db, 1)
	require.NoError(t, err)
	assert.Len(t, course.Sets(), 2)
	assert.EqualValues(t, 1, course.CourseID())

	_, err = LoadCourse(db, 0)
	require.ErrorIs(t, err, ErrInvalidCourse)

	_, err = LoadCourse(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestCourseVerifyUserMembership(t *testing.T) {
	db := setupTestDB(t)

	seedSet(t, db, 1, "profile_field", `{"field":"department"}`, 1)
	seedSet(t, db, 1, "profile_field", `{"field":"city"}`, 1)

	alice := models.User{Username: "alice", Department: "sales", City: "berlin"}
	require.NoError(t, db.Create(&alice).Error)
	enrolUser(t, db, 1, &alice, 1)

	course, err := LoadCourse(db, 1)
	require.NoError(t, err)

	ok, err := course.VerifyUserMembership(db, &alice, true)
	require.NoError(t, err)
	assert.True(t, ok)

	// one group per set, both holding alice
	var groupRows []models.Group
	require.NoError(t, db.Order("id").Find(&groupRows).Error)
	require.Len(t, groupRows, 2)
	assert.Equal(t, "Sales", groupRows[0].Name)
	assert.Equal(t, "Berlin", groupRows[1].Name)

	counts := course.MembershipCounts()
	assert.Equal(t, 1, counts[groupRows[0].ID])
	assert.Equal(t, 1, counts[groupRows[1].ID])
}

func TestCourseVerifyAllMembership(t *testing.T) {
	db := setupTestDB(t)

	seedSet(t, db, 1, "profile_field", `{"field":"department"}`, 1)

	users := []models.User{
		{Username: "alice", Department: "sales"},
		{Username: "bob", Department: "sales"},
		{Username: "carol", Department: "support"},
		{Username: "dave"}, // no department, lands nowhere
	}

	for i := range users {
		require.NoError(t, db.Create(&users[i]).Error)
		enrolUser(t, db, 1, &users[i], 1)
	}

	// enrolled elsewhere only, must not appear
	eve := models.User{Username: "eve", Department: "sales"}
	require.NoError(t, db.Create(&eve).Error)
	enrolUser(t, db, 2, &eve, 1)

	course, err := LoadCourse(db, 1)
	require.NoError(t, err)

	ok, err := course.VerifyAllMembership(db, true)
	require.NoError(t, err)
	assert.True(t, ok)

	var salesGroup, supportGroup models.Group
	require.NoError(t, db.Where("name = ?", "Sales").First(&salesGroup).Error)
	require.NoError(t, db.Where("name = ?", "Support").First(&supportGroup).Error)

	var salesMembers, supportMembers int64
	db.Model(&models.GroupMember{}).Where("group_id = ?", salesGroup.ID).Count(&salesMembers)
	db.Model(&models.GroupMember{}).Where("group_id = ?", supportGroup.ID).Count(&supportMembers)
	assert.EqualValues(t, 2, salesMembers)
	assert.EqualValues(t, 1, supportMembers)
}
