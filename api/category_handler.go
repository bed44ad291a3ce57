package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/appstore-backend/errs"
	"github.com/rpupo63/appstore-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   *services.Catalog
}

func newCategoryHandler(catalog *services.Catalog, deps handlerDeps) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder: NewResponder(logger, deps.views, deps.flashes),
		logger:    logger,
		catalog:   catalog,
	}
}

// listCategories renders the category form above the existing categories.
func (h categoryHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.catalog.Categories()
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.WritePage(w, r, http.StatusOK, "category", map[string]any{
			"title":      "Categories",
			"categories": categories,
			"next":       r.URL.Query().Get("next"),
		})
	}
}

func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.responder.WriteError(w, r, errs.NewMalformedPayloadError("form", err))
			return
		}

		category, err := h.catalog.CreateCategory(services.CategoryInput{
			Name:        strings.TrimSpace(r.PostFormValue("name")),
			Description: strings.TrimSpace(r.PostFormValue("description")),
		})
		if err != nil {
			h.responder.FlashError(w, r, err, "/category")
			return
		}

		h.logger.Info().Uint("categoryID", category.ID).Msg("category created")
		h.responder.Flash(w, r, flashSuccess, "Category added successfully")
		h.responder.Redirect(w, r, nextOrDefault(r, "/category"))
	}
}
