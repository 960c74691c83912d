package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"project-mapping/internal/models"
)

type Config struct {
	DBDriver   string
	DBDSN      string
	ServerPort string

	UploadDir      string
	UploadPolicy   string
	UploadAllowAny bool

	Progress models.ProgressTable
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:     os.Getenv("DB_DRIVER"),
		DBDSN:        os.Getenv("DB_DSN"),
		ServerPort:   os.Getenv("SERVER_PORT"),
		UploadDir:    os.Getenv("UPLOAD_DIR"),
		UploadPolicy: os.Getenv("UPLOAD_POLICY"),
	}

	if cfg.DBDriver == "" {
		cfg.DBDriver = "sqlite"
	}
	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBDSN == "" {
			cfg.DBDSN = "project_mapping.db"
		}
	case "postgres":
		if cfg.DBDSN == "" {
			log.Fatal("DB_DSN is not set")
		}
	default:
		log.Fatalf("unknown DB_DRIVER %q (expected sqlite or postgres)", cfg.DBDriver)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "files"
	}

	switch cfg.UploadPolicy {
	case "":
		cfg.UploadPolicy = "replace"
	case "replace", "strict":
	default:
		log.Fatalf("unknown UPLOAD_POLICY %q (expected replace or strict)", cfg.UploadPolicy)
	}

	if v := os.Getenv("UPLOAD_ALLOW_ANY"); v != "" {
		allow, err := strconv.ParseBool(v)
		if err != nil {
			log.Fatalf("invalid UPLOAD_ALLOW_ANY %q: %v", v, err)
		}
		cfg.UploadAllowAny = allow
	}

	cfg.Progress = loadProgressTable(os.Getenv("PROGRESS_MAP"))

	return cfg
}

// loadProgressTable applies an optional PROGRESS_MAP override on top of
// the default table, e.g. "Waiting BA=80,Not Report=60". Only known
// statuses and percentages in [0,100] are accepted.
func loadProgressTable(raw string) models.ProgressTable {
	table := models.DefaultProgressTable()
	if raw == "" {
		return table
	}

	for _, pair := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			log.Fatalf("invalid PROGRESS_MAP entry %q", pair)
		}
		status, ok := models.ParseStatus(strings.TrimSpace(name))
		if !ok {
			log.Fatalf("PROGRESS_MAP: unknown status %q", name)
		}
		percent, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || percent < 0 || percent > 100 {
			log.Fatalf("PROGRESS_MAP: invalid percentage %q for %s", value, status)
		}
		table[status] = percent
	}
	return table
}
