package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/config"
	"github.com/autogroup-lms/autogroup/internal/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite in-memory db")

	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.RoleAssignment{},
		&models.Enrolment{},
		&models.Group{},
		&models.GroupMember{},
		&models.GroupingSet{},
		&models.GroupingSetRole{},
		&models.ManualMembership{},
		&models.UserInfoField{},
		&models.UserInfoData{},
		&models.Organisation{},
		&models.Position{},
		&models.PositionAssignment{},
		&models.ForumDiscussion{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Webserver: config.Webserver{
			URL:  "http://localhost",
			Port: 3000,
		},
		Autogroup: config.Autogroup{
			Enabled:                  true,
			PreserveManual:           true,
			ListenForGroupMembership: true,
		},
	}
}

func newTestService(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	app := fiber.New()
	db := newTestDB(t)

	var s Service
	require.NoError(t, s.Init(app, newTestConfig(), db))

	return app, db
}

func postEvent(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err, "app.Test failed")

	return resp
}

func TestPostEvent(t *testing.T) {
	app, db := newTestService(t)

	// a course with a department set and one enrolled user
	set := models.GroupingSet{CourseID: 1, SortRule: "profile_field", SortConfig: `{"field":"department"}`}
	require.NoError(t, db.Create(&set).Error)
	require.NoError(t, db.Create(&models.GroupingSetRole{SetID: set.ID, RoleID: 1}).Error)

	alice := models.User{Username: "alice", Department: "sales"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&models.Enrolment{CourseID: 1, UserID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.RoleAssignment{CourseID: 1, UserID: alice.ID, RoleID: 1}).Error)

	resp := postEvent(t, app, `{"type":"user_enrolment_created","user_id":1,"course_id":1}`)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	assert.True(t, reply.Processed)

	var group models.Group
	require.NoError(t, db.Where("course_id = ?", 1).First(&group).Error)
	assert.Equal(t, "Sales", group.Name)
}

func TestPostEventFiltered(t *testing.T) {
	app, _ := newTestService(t)

	// events caused by the reconciler itself are acknowledged but dropped
	resp := postEvent(t, app, `{"type":"group_member_added","origin":"autogroup","user_id":1,"group_id":1}`)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	assert.False(t, reply.Processed)
}

func TestPostEventBadRequests(t *testing.T) {
	app, _ := newTestService(t)

	testCases := []struct {
		name string
		body string
	}{
		{"malformed body", `{`},
		{"missing type", `{"user_id":1}`},
		{"unknown type", `{"type":"no_such_event"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postEvent(t, app, tc.body)

			defer func() {
				_ = resp.Body.Close()
			}()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
