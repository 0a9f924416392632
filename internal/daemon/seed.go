package daemon

import (
	"gorm.io/gorm"

	"github.com/autogroup-lms/autogroup/internal/config"
	"github.com/autogroup-lms/autogroup/internal/db/models"
)

func seed(_ *config.Config, db *gorm.DB) {
	// Seed baseline roles if the role table is empty

	var count int64
	db.Model(&models.Role{}).Count(&count)
	if count == 0 {
		db.Create(
			&[]models.Role{
				{Name: "student", Description: "Enrolled course participant"},
				{Name: "teacher", Description: "Course teacher"},
				{Name: "manager", Description: "Course manager"},
			},
		)
	}
}
