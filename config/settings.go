package config

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultSessionSecret signs flash cookies when SESSION_SECRET is unset.
// It is only accepted with the local sqlite store.
const DefaultSessionSecret = "dev-session-secret-change-me"

// Settings is the typed view of the environment used by the server.
type Settings struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	AcceptedOrigins []string

	Database DatabaseSettings

	// ApplicationsDir is the root under which every application gets its own folder.
	ApplicationsDir string
	// AssetsBaseURL prefixes asset links rendered in templates.
	AssetsBaseURL string
	SessionSecret string
	MaxUploadSize int64

	AssetMirrorBucket string
	AssetMirrorPrefix string
}

type DatabaseSettings struct {
	Type              string
	URL               string
	Host              string
	Port              string
	User              string
	Password          string
	PasswordParameter string
	Name              string
	SSLMode           string
	ReplicaDSN        string
	SQLitePath        string
}

// DSN builds the postgres connection string, preferring DATABASE_URL.
func (d DatabaseSettings) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

func Load(c map[string]string) Settings {
	return Settings{
		Port:            GetString(c, "PORT", "8080"),
		ReadTimeout:     time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
		WriteTimeout:    time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
		IdleTimeout:     time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,
		AcceptedOrigins: GetList(c, "ACCEPTED_ORIGINS"),

		Database: DatabaseSettings{
			Type:              GetString(c, "DB_TYPE", "sqlite"),
			URL:               GetString(c, "DATABASE_URL", ""),
			Host:              GetString(c, "DB_HOST", "localhost"),
			Port:              GetString(c, "DB_PORT", "5432"),
			User:              GetString(c, "DB_USER", "postgres"),
			Password:          GetString(c, "DB_PASSWORD", ""),
			PasswordParameter: GetString(c, "DB_PASSWORD_SSM_PARAMETER", ""),
			Name:              GetString(c, "DB_NAME", "appstore"),
			SSLMode:           GetString(c, "DB_SSLMODE", "disable"),
			ReplicaDSN:        GetString(c, "DB_REPLICA_DSN", ""),
			SQLitePath:        GetString(c, "SQLITE_PATH", "appstore.db"),
		},

		ApplicationsDir: GetString(c, "APPLICATIONS_DIR", "./applications"),
		AssetsBaseURL:   GetString(c, "ASSETS_BASE_URL", "/applications/"),
		SessionSecret:   GetString(c, "SESSION_SECRET", DefaultSessionSecret),
		MaxUploadSize:   int64(GetInt(c, "MAX_UPLOAD_MB", 200)) << 20,

		AssetMirrorBucket: GetString(c, "ASSET_MIRROR_BUCKET", ""),
		AssetMirrorPrefix: GetString(c, "ASSET_MIRROR_PREFIX", "applications"),
	}
}

// Validate checks the settings that have no usable default.
func (s Settings) Validate() error {
	switch s.Database.Type {
	case "postgres", "supa", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", s.Database.Type)
	}
	if s.ApplicationsDir == "" {
		return fmt.Errorf("APPLICATIONS_DIR is required")
	}
	if _, err := url.Parse(s.AssetsBaseURL); err != nil {
		return fmt.Errorf("invalid ASSETS_BASE_URL: %w", err)
	}
	if len(s.SessionSecret) < 16 {
		return fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}
	if s.SessionSecret == DefaultSessionSecret && s.Database.Type != "sqlite" {
		return fmt.Errorf("SESSION_SECRET must be set when DB_TYPE is %s", s.Database.Type)
	}
	if s.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	return nil
}
