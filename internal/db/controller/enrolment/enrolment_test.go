package enrolment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Enrolment{},
		&models.RoleAssignment{},
		&models.GroupingSet{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestEnrolledUsers(t *testing.T) {
	db := setupTestDB(t)

	_, err := EnrolledUsers(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)

	alice := models.User{Username: "alice"}
	bob := models.User{Username: "bob"}
	carol := models.User{Username: "carol"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)
	require.NoError(t, db.Create(&carol).Error)

	require.NoError(t, db.Create(&models.Enrolment{CourseID: 1, UserID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Enrolment{CourseID: 1, UserID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Enrolment{CourseID: 2, UserID: carol.ID}).Error)

	users, err := EnrolledUsers(db, 1)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)

	users, err = EnrolledUsers(db, 3)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestRoleIDs(t *testing.T) {
	db := setupTestDB(t)

	_, err := RoleIDs(nil, 1, 1)
	require.ErrorIs(t, err, ErrDBNil)

	require.NoError(t, db.Create(&models.RoleAssignment{CourseID: 1, UserID: 1, RoleID: 2}).Error)
	require.NoError(t, db.Create(&models.RoleAssignment{CourseID: 1, UserID: 1, RoleID: 1}).Error)
	require.NoError(t, db.Create(&models.RoleAssignment{CourseID: 2, UserID: 1, RoleID: 3}).Error)
	require.NoError(t, db.Create(&models.RoleAssignment{CourseID: 1, UserID: 2, RoleID: 4}).Error)

	roleIDs, err := RoleIDs(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, roleIDs)

	roleIDs, err = RoleIDs(db, 1, 3)
	require.NoError(t, err)
	assert.Empty(t, roleIDs)
}

func TestCourseIDsWithSetForUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := CourseIDsWithSetForUser(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)

	require.NoError(t, db.Create(&models.Enrolment{CourseID: 1, UserID: 1}).Error)
	require.NoError(t, db.Create(&models.Enrolment{CourseID: 2, UserID: 1}).Error)
	require.NoError(t, db.Create(&models.Enrolment{CourseID: 3, UserID: 1}).Error)

	// course 1 carries two sets, course 2 one, course 3 none
	require.NoError(t, db.Create(&models.GroupingSet{CourseID: 1, SortRule: "profile_field"}).Error)
	require.NoError(t, db.Create(&models.GroupingSet{CourseID: 1, SortRule: "profile_field"}).Error)
	require.NoError(t, db.Create(&models.GroupingSet{CourseID: 2, SortRule: "profile_field"}).Error)

	courseIDs, err := CourseIDsWithSetForUser(db, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, courseIDs)

	courseIDs, err = CourseIDsWithSetForUser(db, 99)
	require.NoError(t, err)
	assert.Empty(t, courseIDs)
}
