package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/appstore-backend/errs"
	"github.com/rpupo63/appstore-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type catalogHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   *services.Catalog
}

func newCatalogHandler(catalog *services.Catalog, deps handlerDeps) catalogHandler {
	logger := log.With().Str("handlerName", "catalogHandler").Logger()

	return catalogHandler{
		responder: NewResponder(logger, deps.views, deps.flashes),
		logger:    logger,
		catalog:   catalog,
	}
}

// index renders the installed applications and the ones still available.
func (h catalogHandler) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		installed, err := h.catalog.InstalledApplications()
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		applications, err := h.catalog.BrowsableApplications()
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.WritePage(w, r, http.StatusOK, "index", map[string]any{
			"title":         "App Store",
			"installedApps": installed,
			"applications":  applications,
		})
	}
}

func (h catalogHandler) appInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appUUID, err := parseAppUUID(chi.URLParam(r, "appID"))
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		details, err := h.catalog.Details(appUUID)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.WritePage(w, r, http.StatusOK, "app_info", map[string]any{
			"title":       details.Application.Name,
			"application": details.Application,
			"developer":   details.Developer,
			"entry":       details.Entry,
			"assets":      details.Assets,
			"relatedApps": details.Related,
		})
	}
}

func (h catalogHandler) installApp() http.HandlerFunc {
	return h.setInstalled(true, "Application installed successfully", "Application did not install successfully")
}

func (h catalogHandler) uninstallApp() http.HandlerFunc {
	return h.setInstalled(false, "Application uninstalled successfully", "Application did not uninstall successfully")
}

func (h catalogHandler) setInstalled(installed bool, success, failure string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID, ok := queryAppID(r)
		if !ok {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("app_id"))
			return
		}

		target := "/"
		if !installed {
			target = "/app_info/" + url.PathEscape(rawID)
		}

		appUUID, err := parseAppUUID(rawID)
		if err == nil {
			err = h.catalog.SetInstalled(appUUID, installed)
		}
		if err != nil {
			h.logger.Warn().Err(err).Str("appID", rawID).Bool("installed", installed).Msg("install flag change failed")
			h.responder.Flash(w, r, flashError, failure)
		} else {
			h.responder.Flash(w, r, flashSuccess, success)
		}
		h.responder.Redirect(w, r, target)
	}
}

func (h catalogHandler) launchApp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID, ok := queryAppID(r)
		if !ok {
			h.responder.WriteError(w, r, errs.NewMissingRequiredFieldError("app_id"))
			return
		}

		appUUID, err := parseAppUUID(rawID)
		if err == nil {
			err = h.catalog.LaunchApplication(appUUID)
		}
		if err != nil {
			h.responder.Flash(w, r, flashError, err.Error())
		}
		h.responder.Redirect(w, r, "/")
	}
}

func queryAppID(r *http.Request) (string, bool) {
	values, ok := r.URL.Query()["app_id"]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// parseAppUUID treats a malformed id like an unknown one.
func parseAppUUID(raw string) (uuid.UUID, error) {
	appUUID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewNotFound("application")
	}
	return appUUID, nil
}
