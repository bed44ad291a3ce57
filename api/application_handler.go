package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/appstore-backend/errs"
	"github.com/rpupo63/appstore-backend/services"
	"github.com/rpupo63/appstore-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

type applicationHandler struct {
	responder     Responder
	logger        zerolog.Logger
	catalog       *services.Catalog
	maxUploadSize int64
}

func newApplicationHandler(catalog *services.Catalog, deps handlerDeps) applicationHandler {
	logger := log.With().Str("handlerName", "applicationHandler").Logger()

	return applicationHandler{
		responder:     NewResponder(logger, deps.views, deps.flashes),
		logger:        logger,
		catalog:       catalog,
		maxUploadSize: deps.maxUploadSize,
	}
}

// newApplicationForm renders the upload form with the category and
// developer choices.
func (h applicationHandler) newApplicationForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.catalog.Categories()
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		developers, err := h.catalog.Developers()
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.WritePage(w, r, http.StatusOK, "application", map[string]any{
			"title":      "New Application",
			"categories": categories,
			"developers": developers,
			"extensions": storage.AllowedExtensions(),
		})
	}
}

func (h applicationHandler) createApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.parseMultipart(w, r); err != nil {
			h.responder.FlashError(w, r, err, "/application")
			return
		}
		defer r.MultipartForm.RemoveAll()

		meta, err := applicationMetadataFromForm(r)
		if err != nil {
			h.responder.FlashError(w, r, err, "/application")
			return
		}

		pkg, closeFile, err := formUpload(r, "app_file")
		if err != nil {
			h.responder.FlashError(w, r, err, "/application")
			return
		}
		defer closeFile()

		app, err := h.catalog.CreateApplication(meta, pkg)
		if err != nil {
			if errs.IsNoFileSelectedError(err) {
				h.responder.Flash(w, r, flashError, "Application file not selected")
				h.responder.Redirect(w, r, "/application")
				return
			}
			h.responder.FlashError(w, r, err, "/application")
			return
		}

		h.responder.Flash(w, r, flashSuccess, "Application added successfully")
		h.responder.Redirect(w, r, "/app_assets/"+app.UUID.String())
	}
}

// assetsForm renders the media form of one application.
func (h applicationHandler) assetsForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appUUID, err := parseAppUUID(chi.URLParam(r, "appID"))
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		app, developer, err := h.catalog.ApplicationWithDeveloper(appUUID)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.WritePage(w, r, http.StatusOK, "app_assets", map[string]any{
			"title":       "Assets for " + app.Name,
			"application": app,
			"developer":   developer,
			"slots":       services.AssetSlots(),
			"extensions":  storage.AllowedExtensions(),
			"next":        r.URL.Query().Get("next"),
		})
	}
}

func (h applicationHandler) attachAssets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := chi.URLParam(r, "appID")
		appUUID, err := parseAppUUID(rawID)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}
		formURL := "/app_assets/" + appUUID.String()

		if err := h.parseMultipart(w, r); err != nil {
			h.responder.FlashError(w, r, err, formURL)
			return
		}
		defer r.MultipartForm.RemoveAll()

		uploads := make(map[services.AssetSlot]storage.Upload)
		for _, slot := range services.AssetSlots() {
			upload, closeFile, err := formUpload(r, string(slot))
			if err != nil {
				h.responder.FlashError(w, r, err, formURL)
				return
			}
			defer closeFile()
			uploads[slot] = upload
		}

		if _, err := h.catalog.AttachAssets(r.Context(), appUUID, uploads); err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, r, err)
				return
			}
			h.responder.FlashError(w, r, err, formURL)
			return
		}

		h.responder.Flash(w, r, flashSuccess, "Assets added successfully")
		h.responder.Redirect(w, r, nextOrDefault(r, "/"))
	}
}

func (h applicationHandler) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errs.NewMaxBodySizeExceededError(h.maxUploadSize)
		}
		return errs.NewMalformedPayloadError("multipart", err)
	}
	return nil
}

// formUpload opens the file sent in field. A field with no file yields an
// empty upload rather than an error.
func formUpload(r *http.Request, field string) (storage.Upload, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return storage.Upload{}, func() {}, nil
		}
		return storage.Upload{}, func() {}, errs.NewMalformedPayloadError(field, err)
	}
	return storage.Upload{Filename: header.Filename, Content: file}, closer(file), nil
}

func closer(file multipart.File) func() {
	return func() {
		_ = file.Close()
	}
}

func applicationMetadataFromForm(r *http.Request) (services.ApplicationMetadata, error) {
	categoryID, err := formUint(r, "category_id")
	if err != nil {
		return services.ApplicationMetadata{}, err
	}
	developerID, err := formUint(r, "developer_id")
	if err != nil {
		return services.ApplicationMetadata{}, err
	}

	return services.ApplicationMetadata{
		CategoryID:  categoryID,
		DeveloperID: developerID,
		Version:     strings.TrimSpace(r.FormValue("version")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Permission:  strings.TrimSpace(r.FormValue("permission")),
		OSVersion:   strings.TrimSpace(r.FormValue("osVersion")),
		LaunchURL:   strings.TrimSpace(r.FormValue("launchurl")),
	}, nil
}

// formUint reads an unsigned id field. An empty value is zero so the
// "choose" placeholder option fails the required check downstream.
func formUint(r *http.Request, field string) (uint, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errs.NewInvalidFieldError(field, "must be a number")
	}
	return uint(value), nil
}
