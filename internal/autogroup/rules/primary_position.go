package rules

import (
	"strconv"

	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/db/controller/hierarchy"
	"github.com/autogroup-lms/autogroup/internal/db/models"
)

// positionOptions is the fixed set of position-assignment facets.
var positionOptions = map[string]string{ //nolint:gochecknoglobals
	"organisation": "Organisation",
	"position":     "Position",
	"manager":      "Manager",
}

// PrimaryPosition groups users by a facet of their primary position
// assignment in the host's org chart. A user without a primary
// assignment belongs in no group.
type PrimaryPosition struct {
	cfg Config
}

// EligibleGroupsForUser resolves the user's primary position assignment
// and returns at most one candidate keyed by the configured facet's id,
// with a resolved display name.
func (r *PrimaryPosition) EligibleGroupsForUser(db *gorm.DB, user *models.User) ([]Candidate, error) {
	if _, ok := positionOptions[r.cfg.Field]; !ok {
		return nil, nil
	}

	assignment, err := hierarchy.PrimaryAssignment(db, user.ID)
	if err != nil {
		return nil, err
	}

	if assignment == nil {
		return nil, nil
	}

	var (
		facetID uint64
		name    string
	)

	switch r.cfg.Field {
	case "organisation":
		facetID = assignment.OrganisationID
		if facetID != 0 {
			name, err = hierarchy.OrganisationName(db, facetID)
		}
	case "position":
		facetID = assignment.PositionID
		if facetID != 0 {
			name, err = hierarchy.PositionName(db, facetID)
		}
	case "manager":
		facetID = assignment.ManagerID
		if facetID != 0 {
			name, err = hierarchy.ManagerName(db, facetID)
			name = "manager: " + name
		}
	}

	if err != nil {
		return nil, err
	}

	if facetID == 0 {
		return nil, nil
	}

	key := r.cfg.Field + "_" + strconv.FormatUint(facetID, 10)

	return []Candidate{{Key: key, Name: name}}, nil
}

// ConfigIsValid reports whether the configured facet is accepted.
func (r *PrimaryPosition) ConfigIsValid(_ *gorm.DB, cfg Config) bool {
	_, ok := positionOptions[cfg.Field]
	return ok
}

// ConfigOptions returns the accepted facets with labels.
func (r *PrimaryPosition) ConfigOptions(_ *gorm.DB) (map[string]string, error) {
	options := make(map[string]string, len(positionOptions))
	for k, v := range positionOptions {
		options[k] = v
	}

	return options, nil
}

// GroupingBy returns the configured facet name.
func (r *PrimaryPosition) GroupingBy(_ *gorm.DB) string {
	return r.cfg.Field
}
