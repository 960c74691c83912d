package main

import (
	"fmt"
	"log"

	"project-mapping/internal/config"
	"project-mapping/internal/database"
	"project-mapping/internal/repository"
	"project-mapping/internal/server"
	"project-mapping/internal/storage"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}

	files, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("storage error: %v", err)
	}

	attachments := repository.NewAttachmentStore(db, files, repository.UploadPolicy(cfg.UploadPolicy), cfg.UploadAllowAny)
	projects := repository.NewProjectRepository(db, attachments, cfg.Progress)

	r := server.NewRouter(projects, attachments)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
