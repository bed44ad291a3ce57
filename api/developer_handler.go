package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/appstore-backend/errs"
	"github.com/rpupo63/appstore-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type developerHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   *services.Catalog
}

func newDeveloperHandler(catalog *services.Catalog, deps handlerDeps) developerHandler {
	logger := log.With().Str("handlerName", "developerHandler").Logger()

	return developerHandler{
		responder: NewResponder(logger, deps.views, deps.flashes),
		logger:    logger,
		catalog:   catalog,
	}
}

func (h developerHandler) listDevelopers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		developers, err := h.catalog.Developers()
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.WritePage(w, r, http.StatusOK, "developer", map[string]any{
			"title":      "Developers",
			"developers": developers,
			"next":       r.URL.Query().Get("next"),
		})
	}
}

func (h developerHandler) createDeveloper() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.responder.WriteError(w, r, errs.NewMalformedPayloadError("form", err))
			return
		}

		userID, err := formUint(r, "user_id")
		if err != nil {
			h.responder.FlashError(w, r, err, "/developer")
			return
		}

		developer, err := h.catalog.CreateDeveloper(services.DeveloperInput{
			UserID: userID,
			Name:   strings.TrimSpace(r.PostFormValue("name")),
		})
		if err != nil {
			h.responder.FlashError(w, r, err, "/developer")
			return
		}

		h.logger.Info().Uint("userID", developer.UserID).Msg("developer created")
		h.responder.Flash(w, r, flashSuccess, "Developer added successfully")
		h.responder.Redirect(w, r, nextOrDefault(r, "/developer"))
	}
}
