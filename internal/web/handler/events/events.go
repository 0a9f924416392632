// Package events exposes the webhook endpoint the host platform posts
// its events to. One event per request; the response reports whether
// reconciliation work was performed.
package events

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/config"
	"github.com/autogroup-lms/autogroup/internal/events"
	"github.com/autogroup-lms/autogroup/internal/web/handler"
)

const (
	// Path is the path of the event webhook.
	Path = "/events"
)

// Service is the event webhook handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	events    *events.Handler
}

// Handler is the event webhook handler.
var Handler = Service{}

// Response is the webhook reply body.
type Response struct {
	Processed bool `json:"processed"`
}

// Init initializes the event webhook handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()
	s.events = events.New(db, cfg)

	app.Route(Path, func(router fiber.Router) {
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Post accepts one host event and dispatches it. A malformed or unknown
// event is a client error; a failing use case is contained here and
// reported as a server error so the host's event queue can retry.
func (s *Service) Post(c *fiber.Ctx) error {
	event := new(events.Event)

	if err := c.BodyParser(event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed event body",
		})
	}

	if err := s.validator.Struct(event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	processed, err := s.events.Handle(*event)
	if err != nil {
		if errors.Is(err, events.ErrUnknownEventType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		log.Error().Err(err).
			Str("type", event.Type).
			Uint64("user", event.UserID).
			Uint64("course", event.CourseID).
			Msg("event handling failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "event handling failed",
		})
	}

	return c.JSON(Response{Processed: processed})
}
