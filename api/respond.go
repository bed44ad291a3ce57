package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/rpupo63/appstore-backend/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger  zerolog.Logger
	views   *Views
	flashes *FlashStore
}

func NewResponder(logger zerolog.Logger, views *Views, flashes *FlashStore) Responder {
	return Responder{logger, views, flashes}
}

// WritePage renders page with data plus the pending flash messages.
func (r Responder) WritePage(w http.ResponseWriter, req *http.Request, status int, page string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["title"]; !ok {
		data["title"] = "App Store"
	}

	flashes, err := r.flashes.Pop(w, req)
	if err != nil {
		r.logger.Warn().Err(err).Msg("error reading flash messages")
	}
	data["flashes"] = flashes

	body, err := r.views.Render(page, data)
	if err != nil {
		r.logger.Error().Err(err).Str("page", page).Msg("error rendering page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError renders the error page with the status carried by err.
// Unexpected errors are logged and shown without their internals.
func (r Responder) WriteError(w http.ResponseWriter, req *http.Request, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Str("path", req.URL.Path).Msg("unexpected error")
		r.WritePage(w, req, http.StatusInternalServerError, "error", map[string]any{
			"title":   http.StatusText(http.StatusInternalServerError),
			"status":  http.StatusInternalServerError,
			"message": "An unexpected error occurred",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("path", req.URL.Path).Msg(apiErr.GetFullError())
	}

	data := map[string]any{
		"title":   http.StatusText(apiErr.StatusCode),
		"status":  apiErr.StatusCode,
		"message": apiErr.Message(),
	}
	if apiErr.Details != "" {
		data["details"] = apiErr.Details
	}
	r.WritePage(w, req, apiErr.StatusCode, "error", data)
}

// Flash queues a message for the next page. Failing to store it only loses
// the message.
func (r Responder) Flash(w http.ResponseWriter, req *http.Request, category, message string) {
	if err := r.flashes.Add(w, req, category, message); err != nil {
		r.logger.Warn().Err(err).Str("category", category).Msg("error storing flash message")
	}
}

func (r Responder) Redirect(w http.ResponseWriter, req *http.Request, target string) {
	http.Redirect(w, req, target, http.StatusFound)
}

// FlashError queues the user-facing message of err and redirects to target.
// Errors without a user-facing message render the error page instead.
func (r Responder) FlashError(w http.ResponseWriter, req *http.Request, err error, target string) {
	if errs.StatusOf(err) >= http.StatusInternalServerError {
		r.WriteError(w, req, err)
		return
	}

	r.Flash(w, req, flashError, err.Error())
	r.Redirect(w, req, target)
}

// nextOrDefault returns the "next" query parameter when it is a path on
// this site, and fallback otherwise.
func nextOrDefault(req *http.Request, fallback string) string {
	next := req.URL.Query().Get("next")
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return fallback
	}
	return next
}
