package api

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/rpupo63/appstore-backend/models"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	mainLayout = "layouts/main"
	staticPath = "/static/"
)

// Views renders the embedded page templates inside the main layout.
type Views struct {
	engine        *html.Engine
	assetsBaseURL string
}

func NewViews(assetsBaseURL string) (*Views, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(assetsBaseURL, "/") {
		assetsBaseURL += "/"
	}
	v := &Views{
		engine:        html.NewFileSystem(http.FS(sub), ".html"),
		assetsBaseURL: assetsBaseURL,
	}
	v.engine.AddFunc("assetURL", v.assetURL)
	v.engine.AddFunc("hasVideo", hasVideo)

	if err := v.engine.Load(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return v, nil
}

// Render executes page with data and returns the full document.
func (v *Views) Render(page string, data map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := v.engine.Render(&buf, page, data, mainLayout); err != nil {
		return nil, fmt.Errorf("render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

// assetURL links a stored asset file. Placeholders are served from the
// bundled static images instead of the application folder.
func (v *Views) assetURL(appUUID uuid.UUID, name string) string {
	switch name {
	case models.PlaceholderIcon, models.PlaceholderScreenshot:
		return staticPath + "img/" + name
	}
	return v.assetsBaseURL + appUUID.String() + "/assets/" + name
}

func hasVideo(name string) bool {
	return name != "" && name != models.PlaceholderVideo
}
