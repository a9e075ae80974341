package handler

import (
	"github.com/JayWelborn/Rango/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	catalog    *service.CatalogService
	engagement *service.EngagementService
	search     *service.SearchService
	uploadDir  string
	uploadURL  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, searchKeyPath, uploadDir, uploadURL string) *API {
	return &API{
		db:         gdb,
		catalog:    service.NewCatalogService(gdb),
		engagement: service.NewEngagementService(gdb),
		search:     service.NewSearchService(searchKeyPath),
		uploadDir:  uploadDir,
		uploadURL:  uploadURL,
	}
}

// Search exposes the search service so callers can swap its transport or
// endpoint.
func (a *API) Search() *service.SearchService {
	return a.search
}
