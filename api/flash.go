package api

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	flashSession = "appstore-flash"

	flashSuccess = "success"
	flashError   = "error"
)

// Flash is one message queued for the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// FlashStore keeps flash messages in a signed cookie between a redirect
// and the page it lands on.
type FlashStore struct {
	store *sessions.CookieStore
}

func NewFlashStore(secret string) *FlashStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &FlashStore{store: store}
}

func (f *FlashStore) Add(w http.ResponseWriter, r *http.Request, category, message string) error {
	session, err := f.store.Get(r, flashSession)
	if err != nil && session == nil {
		return err
	}
	session.AddFlash(message, category)
	return session.Save(r, w)
}

// Pop removes and returns the queued messages, success first.
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) ([]Flash, error) {
	session, err := f.store.Get(r, flashSession)
	if err != nil && session == nil {
		return nil, err
	}

	var flashes []Flash
	for _, category := range []string{flashSuccess, flashError} {
		for _, value := range session.Flashes(category) {
			if message, ok := value.(string); ok {
				flashes = append(flashes, Flash{Category: category, Message: message})
			}
		}
	}
	if len(flashes) == 0 {
		return nil, nil
	}
	return flashes, session.Save(r, w)
}
