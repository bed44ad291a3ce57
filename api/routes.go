package api

import (
	"strings"

	"github.com/go-chi/chi/v5"
)

// setupCatalogRoutes registers the store pages and the form endpoints
func setupCatalogRoutes(r chi.Router, handlers *routeHandlers, assetsBaseURL string) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Catalog pages
		r.Get("/", handlers.catalogHandler.index())
		r.Get("/app_info/{appID}", handlers.catalogHandler.appInfo())
		r.Get("/install_app", handlers.catalogHandler.installApp())
		r.Get("/uninstall_app", handlers.catalogHandler.uninstallApp())
		r.Get("/launch_app", handlers.catalogHandler.launchApp())

		// Application upload flow
		r.Get("/application", handlers.applicationHandler.newApplicationForm())
		r.Post("/application", handlers.applicationHandler.createApplication())
		r.Get("/app_assets/{appID}", handlers.applicationHandler.assetsForm())
		r.Post("/app_assets/{appID}", handlers.applicationHandler.attachAssets())

		// Reference data
		r.Get("/category", handlers.categoryHandler.listCategories())
		r.Post("/category", handlers.categoryHandler.createCategory())
		r.Get("/developer", handlers.developerHandler.listDevelopers())
		r.Post("/developer", handlers.developerHandler.createDeveloper())
	})

	// Files
	r.Handle(staticPath+"*", handlers.assetFileHandler.serveStatic())
	// Asset links pointing at another host are served elsewhere.
	if strings.HasPrefix(assetsBaseURL, "/") {
		prefix := strings.TrimSuffix(assetsBaseURL, "/")
		r.Get(prefix+"/{appID}/assets/{name}", handlers.assetFileHandler.serveAsset())
	}
}
