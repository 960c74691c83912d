package database

import (
	"path/filepath"
	"testing"

	"project-mapping/internal/config"
	"project-mapping/internal/models"
)

func TestOpen_SqliteMigrates(t *testing.T) {
	cfg := &config.Config{
		DBDriver: "sqlite",
		DBDSN:    filepath.Join(t.TempDir(), "test.db"),
	}

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	migrator := db.Migrator()
	if !migrator.HasTable(&models.Project{}) {
		t.Error("projects table missing after migration")
	}
	if !migrator.HasTable(&models.Attachment{}) {
		t.Error("project_files table missing after migration")
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{DBDriver: "oracle", DBDSN: "whatever"}
	if _, err := Open(cfg); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
