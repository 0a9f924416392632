package groupingset

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

func newTestService(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	app := fiber.New()
	db := newTestDB(t)

	cfg := &config.Config{
		Webserver: config.Webserver{
			URL:  "http://localhost",
			Port: 3000,
		},
		Autogroup: config.Autogroup{
			Enabled:        true,
			PreserveManual: true,
		},
	}

	var s Service
	require.NoError(t, s.Init(app, cfg, db))

	return app, db
}

func seedEnrolledUser(t *testing.T, db *gorm.DB, courseID uint64, department string) *models.User {
	t.Helper()

	user := models.User{Username: department + "-user", Department: department}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Enrolment{CourseID: courseID, UserID: user.ID}).Error)
	require.NoError(t, db.Create(&models.RoleAssignment{CourseID: courseID, UserID: user.ID, RoleID: 1}).Error)

	return &user
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err, "app.Test failed")

	return resp
}

func TestPostCreatesAndReconciles(t *testing.T) {
	app, db := newTestService(t)

	seedEnrolledUser(t, db, 1, "sales")
	seedEnrolledUser(t, db, 1, "support")

	resp := doRequest(t, app, http.MethodPost, "/courses/1/groupingset",
		`{"rule":"profile_field","field":"department","roles":[1]}`)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var view SetView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.NotZero(t, view.ID)
	assert.Equal(t, "profile_field", view.Rule)
	assert.Equal(t, []uint64{1}, view.Roles)

	// the course was reconciled right away
	var groups []models.Group
	require.NoError(t, db.Order("id").Find(&groups).Error)
	require.Len(t, groups, 2)
	assert.Equal(t, "Sales", groups[0].Name)
	assert.Equal(t, "Support", groups[1].Name)
}

func TestPostRejectsBadRequests(t *testing.T) {
	app, _ := newTestService(t)

	testCases := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{
			name:   "malformed body",
			target: "/courses/1/groupingset",
			body:   `{`,
			status: http.StatusBadRequest,
		},
		{
			name:   "missing rule",
			target: "/courses/1/groupingset",
			body:   `{"field":"department"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown rule",
			target: "/courses/1/groupingset",
			body:   `{"rule":"no_such_rule","field":"department"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "field not accepted by rule",
			target: "/courses/1/groupingset",
			body:   `{"rule":"profile_field","field":"no_such_field"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid course id",
			target: "/courses/0/groupingset",
			body:   `{"rule":"profile_field","field":"department"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown set id",
			target: "/courses/1/groupingset",
			body:   `{"set_id":999,"rule":"profile_field","field":"department"}`,
			status: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodPost, tc.target, tc.body)

			defer func() {
				_ = resp.Body.Close()
			}()

			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestGetListsSets(t *testing.T) {
	app, db := newTestService(t)

	set := models.GroupingSet{CourseID: 1, SortRule: "profile_field", SortConfig: `{"field":"department"}`}
	require.NoError(t, db.Create(&set).Error)
	require.NoError(t, db.Create(&models.GroupingSetRole{SetID: set.ID, RoleID: 1}).Error)

	resp := doRequest(t, app, http.MethodGet, "/courses/1/groupingset", "")

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var views []SetView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	require.Len(t, views, 1)
	assert.Equal(t, set.ID, views[0].ID)
	assert.Equal(t, "department", views[0].GroupingBy)
	assert.Equal(t, []uint64{1}, views[0].Roles)

	// another course is empty
	resp2 := doRequest(t, app, http.MethodGet, "/courses/2/groupingset", "")

	defer func() {
		_ = resp2.Body.Close()
	}()

	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var empty []SetView
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&empty))
	assert.Empty(t, empty)
}

func TestPostUpdatesExistingSet(t *testing.T) {
	app, db := newTestService(t)

	set := models.GroupingSet{CourseID: 1, SortRule: "profile_field", SortConfig: `{"field":"department"}`}
	require.NoError(t, db.Create(&set).Error)

	resp := doRequest(t, app, http.MethodPost, "/courses/1/groupingset",
		`{"set_id":1,"rule":"profile_field","field":"city","roles":[1,2]}`)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var view SetView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, set.ID, view.ID)
	assert.Equal(t, "city", view.GroupingBy)
	assert.Equal(t, []uint64{1, 2}, view.Roles)
}

func TestDelete(t *testing.T) {
	testCases := []struct {
		name           string
		target         string
		expectedGroups int64
	}{
		{
			name:           "cleanup removes groups",
			target:         "/courses/1/groupingset/1?cleanup=true",
			expectedGroups: 0,
		},
		{
			name:           "without cleanup groups survive unmanaged",
			target:         "/courses/1/groupingset/1",
			expectedGroups: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, db := newTestService(t)

			set := models.GroupingSet{CourseID: 1, SortRule: "profile_field", SortConfig: `{"field":"department"}`}
			require.NoError(t, db.Create(&set).Error)
			require.NoError(t, db.Create(&models.GroupingSetRole{SetID: set.ID, RoleID: 1}).Error)

			group := models.Group{CourseID: 1, IDNumber: "autogroup|1|sales", Name: "Sales"}
			require.NoError(t, db.Create(&group).Error)

			resp := doRequest(t, app, http.MethodDelete, tc.target, "")

			defer func() {
				_ = resp.Body.Close()
			}()

			require.Equal(t, http.StatusNoContent, resp.StatusCode)

			var setRows, groupRows int64
			db.Model(&models.GroupingSet{}).Count(&setRows)
			db.Model(&models.Group{}).Count(&groupRows)
			assert.Zero(t, setRows)
			assert.Equal(t, tc.expectedGroups, groupRows)
		})
	}
}

func TestDeleteErrors(t *testing.T) {
	app, db := newTestService(t)

	// set exists, but on a different course
	set := models.GroupingSet{CourseID: 2, SortRule: "profile_field", SortConfig: `{"field":"department"}`}
	require.NoError(t, db.Create(&set).Error)

	testCases := []struct {
		name   string
		target string
		status int
	}{
		{"unknown set", "/courses/1/groupingset/999", http.StatusNotFound},
		{"wrong course", "/courses/1/groupingset/1", http.StatusNotFound},
		{"invalid set id", "/courses/1/groupingset/abc", http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodDelete, tc.target, "")

			defer func() {
				_ = resp.Body.Close()
			}()

			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
