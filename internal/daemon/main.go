// Package daemon wires configuration, logging, the database and the
// web service into the running process.
package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/config"
	"github.com/autogroup-lms/autogroup/internal/db/dsn"
	"github.com/autogroup-lms/autogroup/internal/db/models"
	"github.com/autogroup-lms/autogroup/internal/logger"
	"github.com/autogroup-lms/autogroup/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	if err := logger.Init(cfg.Log); err != nil {
		panic(err)
	}

	dbDriver := gormmysql.Open(dsn.Create(cfg)) // open db with gorm mysql driver

	db, err := gorm.Open(dbDriver, &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
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
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	return &Daemon{
		cfg:        cfg,
		webService: *web.New(cfg, db),
	}
}
