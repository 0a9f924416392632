// Package groupingset exposes the administrative JSON API for managing
// the grouping sets of a course.
package groupingset

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/autogroup"
	"github.com/autogroup-lms/autogroup/internal/autogroup/rules"
	"github.com/autogroup-lms/autogroup/internal/autogroup/usecase"
	"github.com/autogroup-lms/autogroup/internal/config"
	setcontroller "github.com/autogroup-lms/autogroup/internal/db/controller/groupingset"
	"github.com/autogroup-lms/autogroup/internal/web/handler"
)

const (
	// Path is the base path for grouping set management.
	Path = "/courses/:courseid/groupingset"
)

// Service is the grouping set handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the grouping set handler.
var Handler = Service{}

// Request is the create/update body.
type Request struct {
	SetID uint64   `json:"set_id,omitempty"`
	Rule  string   `json:"rule" validate:"required"`
	Field string   `json:"field" validate:"required"`
	Roles []uint64 `json:"roles"`
}

// GroupView is one managed group in a set reply.
type GroupView struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	IDNumber string `json:"idnumber"`
	Members  int    `json:"members"`
}

// SetView is one grouping set in a reply.
type SetView struct {
	ID         uint64      `json:"id"`
	CourseID   uint64      `json:"course_id"`
	Rule       string      `json:"rule"`
	GroupingBy string      `json:"grouping_by"`
	Roles      []uint64    `json:"roles"`
	Groups     []GroupView `json:"groups"`
}

// Init initializes the grouping set handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, s.Post)
		router.Delete("/:setid", s.Delete)
	})

	return nil
}

// Get lists the grouping sets of a course with their managed groups.
func (s *Service) Get(c *fiber.Ctx) error {
	courseID, err := courseParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course, err := autogroup.LoadCourse(s.db, courseID)
	if err != nil {
		log.Error().Err(err).Uint64("course", courseID).Msg("failed to load course")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load course"})
	}

	views := make([]SetView, 0, len(course.Sets()))
	for _, set := range course.Sets() {
		views = append(views, s.setView(set))
	}

	return c.JSON(views)
}

// Post creates a new grouping set or reconfigures an existing one, then
// reconciles the whole course so membership reflects the change.
func (s *Service) Post(c *fiber.Ctx) error {
	courseID, err := courseParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	req := new(Request)

	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if !rules.KnownKind(req.Rule) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown rule"})
	}

	set, status, err := s.resolveSet(courseID, req)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	if err := set.SetRule(rules.Kind(req.Rule)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := set.SetOptions(s.db, rules.Config{Field: req.Field}); err != nil {
		if errors.Is(err, autogroup.ErrInvalidRuleConfig) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Uint64("course", courseID).Msg("failed to configure grouping set")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to configure grouping set"})
	}

	if _, err := set.SetEligibleRoles(s.db, req.Roles); err != nil {
		log.Error().Err(err).Uint64("course", courseID).Msg("failed to store eligible roles")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store eligible roles"})
	}

	if err := set.Save(s.db); err != nil {
		log.Error().Err(err).Uint64("course", courseID).Msg("failed to save grouping set")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save grouping set"})
	}

	if _, err := usecase.VerifyCourseGroupMembership(s.db, s.cfg, courseID); err != nil {
		log.Error().Err(err).Uint64("course", courseID).Msg("reconciliation after save failed")
	}

	return c.Status(fiber.StatusCreated).JSON(s.setView(set))
}

// Delete removes a grouping set. With the cleanup query flag its groups
// are removed entirely; without it they stay behind as ordinary,
// permanently unmanaged groups.
func (s *Service) Delete(c *fiber.Ctx) error {
	courseID, err := courseParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	setID, err := strconv.ParseUint(c.Params("setid"), 10, 64)
	if err != nil || setID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid set id"})
	}

	row, err := setcontroller.Get(s.db, setID)
	if err != nil {
		if errors.Is(err, setcontroller.ErrSetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Uint64("set", setID).Msg("failed to load grouping set")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load grouping set"})
	}

	if row.CourseID != courseID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "grouping set not found in course"})
	}

	set, err := autogroup.LoadSet(s.db, *row)
	if err != nil {
		log.Error().Err(err).Uint64("set", setID).Msg("failed to load grouping set")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load grouping set"})
	}

	if err := set.Delete(s.db, c.QueryBool("cleanup")); err != nil {
		log.Error().Err(err).Uint64("set", setID).Msg("failed to delete grouping set")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete grouping set"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// resolveSet loads the set named by the request or creates a fresh one.
func (s *Service) resolveSet(courseID uint64, req *Request) (*autogroup.GroupingSet, int, error) {
	if req.SetID == 0 {
		set, err := autogroup.NewSet(courseID, rules.Kind(req.Rule))
		if err != nil {
			return nil, fiber.StatusBadRequest, err
		}

		return set, 0, nil
	}

	row, err := setcontroller.Get(s.db, req.SetID)
	if err != nil {
		if errors.Is(err, setcontroller.ErrSetNotFound) {
			return nil, fiber.StatusNotFound, err
		}

		return nil, fiber.StatusInternalServerError, err
	}

	if row.CourseID != courseID {
		return nil, fiber.StatusNotFound, errors.New("grouping set not found in course")
	}

	set, err := autogroup.LoadSet(s.db, *row)
	if err != nil {
		return nil, fiber.StatusInternalServerError, err
	}

	return set, 0, nil
}

func (s *Service) setView(set *autogroup.GroupingSet) SetView {
	groups := make([]GroupView, 0, set.GroupCount())

	for _, group := range set.Groups() {
		groups = append(groups, GroupView{
			ID:       group.ID(),
			Name:     group.Name(),
			IDNumber: group.IDNumber(),
			Members:  group.MembershipCount(),
		})
	}

	return SetView{
		ID:         set.ID(),
		CourseID:   set.CourseID(),
		Rule:       string(set.RuleKind()),
		GroupingBy: set.GroupingBy(s.db),
		Roles:      set.EligibleRoles(),
		Groups:     groups,
	}
}

func courseParam(c *fiber.Ctx) (uint64, error) {
	courseID, err := strconv.ParseUint(c.Params("courseid"), 10, 64)
	if err != nil || courseID == 0 {
		return 0, errors.New("invalid course id")
	}

	return courseID, nil
}
