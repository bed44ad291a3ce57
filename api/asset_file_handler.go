package api

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/appstore-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// assetFileHandler serves stored asset files and the bundled static images.
// Package files are never exposed.
type assetFileHandler struct {
	logger zerolog.Logger
	layout storage.Layout
}

func newAssetFileHandler(layout storage.Layout) assetFileHandler {
	return assetFileHandler{
		logger: log.With().Str("handlerName", "assetFileHandler").Logger(),
		layout: layout,
	}
}

func (h assetFileHandler) serveAsset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appUUID, err := parseAppUUID(chi.URLParam(r, "appID"))
		if err != nil {
			http.NotFound(w, r)
			return
		}

		name := chi.URLParam(r, "name")
		if name == "" || name != filepath.Base(name) || name[0] == '.' {
			http.NotFound(w, r)
			return
		}

		path := filepath.Join(h.layout.Dirs(appUUID.String()).AssetsDir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			if err != nil && !os.IsNotExist(err) {
				h.logger.Warn().Err(err).Str("path", path).Msg("error reading asset file")
			}
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, path)
	}
}

func (h assetFileHandler) serveStatic() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		h.logger.Error().Err(err).Msg("static files unavailable")
		return http.NotFoundHandler()
	}
	return http.StripPrefix(staticPath, http.FileServer(http.FS(sub)))
}
