package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"project-mapping/internal/config"
	"project-mapping/internal/models"
)

// Open connects to the configured database and runs the migrations.
// The handle is returned to the caller; this package keeps no global.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DBDriver {
	case "postgres":
		db, err = openPostgres(cfg.DBDSN)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// openPostgres retries for a while: in container setups the database
// is often still starting when the app comes up.
func openPostgres(dsn string) (*gorm.DB, error) {
	const maxAttempts = 10

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			return db, nil
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("after %d attempts: %w", maxAttempts, err)
}

// Migrate creates or updates the projects and project_files tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Project{},
		&models.Attachment{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
