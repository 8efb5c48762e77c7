package db

import (
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and runs migrations.
func Open(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}

	utils.Sugar.Info("database connection established")
	return conn, nil
}

// Migrate creates or updates the schema. Order matters: referenced
// tables first so foreign keys resolve.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// SeedGroups creates the default topic groups on first boot.
func SeedGroups(conn *gorm.DB) {
	var count int64
	conn.Model(&models.Group{}).Count(&count)
	if count > 0 {
		return
	}

	groups := []models.Group{
		{Title: "General", Slug: "general", Description: "Anything goes"},
		{Title: "Tech", Slug: "tech", Description: "Programming, tools and hardware"},
		{Title: "Writing", Slug: "writing", Description: "Essays, fiction and craft"},
		{Title: "Life", Slug: "life", Description: "Everyday notes"},
	}

	for _, group := range groups {
		if err := conn.Create(&group).Error; err != nil {
			utils.Sugar.Warnf("seed group %s: %v", group.Slug, err)
		}
	}
	utils.Sugar.Info("default groups created")
}
