package api

import (
	"github.com/rpupo63/appstore-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	catalogHandler     catalogHandler
	applicationHandler applicationHandler
	categoryHandler    categoryHandler
	developerHandler   developerHandler
	assetFileHandler   assetFileHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(catalog *services.Catalog, deps handlerDeps) *routeHandlers {
	return &routeHandlers{
		catalogHandler:     newCatalogHandler(catalog, deps),
		applicationHandler: newApplicationHandler(catalog, deps),
		categoryHandler:    newCategoryHandler(catalog, deps),
		developerHandler:   newDeveloperHandler(catalog, deps),
		assetFileHandler:   newAssetFileHandler(deps.layout),
	}
}
