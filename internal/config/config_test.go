package config

import (
	"testing"

	"project-mapping/internal/models"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"DB_DRIVER", "DB_DSN", "SERVER_PORT",
		"UPLOAD_DIR", "UPLOAD_POLICY", "UPLOAD_ALLOW_ANY", "PROGRESS_MAP",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.DBDriver != "sqlite" || cfg.DBDSN != "project_mapping.db" {
		t.Errorf("db defaults: %s %s", cfg.DBDriver, cfg.DBDSN)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("port default: %s", cfg.ServerPort)
	}
	if cfg.UploadDir != "files" {
		t.Errorf("upload dir default: %s", cfg.UploadDir)
	}
	if cfg.UploadPolicy != "replace" || cfg.UploadAllowAny {
		t.Errorf("upload policy defaults: %s allowAny=%v", cfg.UploadPolicy, cfg.UploadAllowAny)
	}

	if percent, _ := cfg.Progress.Percent(models.StatusWaitingBA); percent != 60 {
		t.Errorf("default Waiting BA = %d, want 60", percent)
	}
}

func TestLoadProgressTable_Override(t *testing.T) {
	table := loadProgressTable("Waiting BA=80, Not Report=60")

	if percent, _ := table.Percent(models.StatusWaitingBA); percent != 80 {
		t.Errorf("Waiting BA = %d, want 80", percent)
	}
	if percent, _ := table.Percent(models.StatusNotReport); percent != 60 {
		t.Errorf("Not Report = %d, want 60", percent)
	}
	// Untouched statuses keep their defaults.
	if percent, _ := table.Percent(models.StatusCompleted); percent != 100 {
		t.Errorf("Completed = %d, want 100", percent)
	}
}

func TestLoadProgressTable_Alias(t *testing.T) {
	table := loadProgressTable("On Going=50")
	if percent, _ := table.Percent(models.StatusInProgress); percent != 50 {
		t.Errorf("In Progress via alias = %d, want 50", percent)
	}
}
