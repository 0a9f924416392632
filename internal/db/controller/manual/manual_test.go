package manual

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

	err = db.AutoMigrate(&models.ManualMembership{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestExists(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		userID        uint64
		groupID       uint64
		seed          []models.ManualMembership
		expectedError error
		expected      bool
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			userID:        1,
			groupID:       1,
			expectedError: ErrDBNil,
		},
		{
			name:     "no record",
			dbParam:  db,
			userID:   1,
			groupID:  1,
			expected: false,
		},
		{
			name:    "record exists",
			dbParam: db,
			userID:  1,
			groupID: 1,
			seed: []models.ManualMembership{
				{UserID: 1, GroupID: 1},
			},
			expected: true,
		},
		{
			name:    "other pair does not match",
			dbParam: db,
			userID:  1,
			groupID: 2,
			seed: []models.ManualMembership{
				{UserID: 1, GroupID: 1},
				{UserID: 2, GroupID: 2},
			},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM manual_memberships")
			}

			for _, record := range tc.seed {
				require.NoError(t, tc.dbParam.Create(&record).Error)
			}

			exists, err := Exists(tc.dbParam, tc.userID, tc.groupID)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, exists)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	db := setupTestDB(t)

	require.ErrorIs(t, Add(nil, 1, 1), ErrDBNil)

	require.NoError(t, Add(db, 1, 1))

	// adding twice keeps a single record
	require.NoError(t, Add(db, 1, 1))

	var count int64
	db.Model(&models.ManualMembership{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRemove(t *testing.T) {
	db := setupTestDB(t)

	require.ErrorIs(t, Remove(nil, 1, 1), ErrDBNil)

	require.NoError(t, Add(db, 1, 1))
	require.NoError(t, Add(db, 2, 1))

	require.NoError(t, Remove(db, 1, 1))

	// removing an absent pair is fine
	require.NoError(t, Remove(db, 1, 1))

	exists, err := Exists(db, 2, 1)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExistsForGroupAndRemoveForGroup(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Add(db, 1, 1))
	require.NoError(t, Add(db, 2, 1))
	require.NoError(t, Add(db, 1, 2))

	exists, err := ExistsForGroup(db, 1)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, RemoveForGroup(db, 1))

	exists, err = ExistsForGroup(db, 1)
	require.NoError(t, err)
	assert.False(t, exists)

	// records of other groups survive
	exists, err = ExistsForGroup(db, 2)
	require.NoError(t, err)
	assert.True(t, exists)
}
