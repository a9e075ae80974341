package main

import (
	"fmt"
	"log"

	"github.com/JayWelborn/Rango/internal/config"
	"github.com/JayWelborn/Rango/internal/db"
	"github.com/JayWelborn/Rango/internal/service"
)

// Seeds the catalog with the starter categories and pages. Safe to run more
// than once: the upserts converge on the same rows.
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	fmt.Println("Starting Rango population script...")

	catalog := service.NewCatalogService(db.DB)
	if err := catalog.Populate(); err != nil {
		log.Fatalf("population failed: %v", err)
	}

	var categories []db.Category
	if err := db.DB.Preload("Pages").Order("name ASC").Find(&categories).Error; err != nil {
		log.Fatalf("failed to list catalog: %v", err)
	}

	for _, category := range categories {
		for _, page := range category.Pages {
			fmt.Printf("- %s - %s\n", category.Name, page.Title)
		}
	}
}
