package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Source kinds for the product feed
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourceDrive    = "drive"
	SourcePostgres = "postgres"
)

// Config holds the service configuration read from the environment
type Config struct {
	Env     string
	Addr    string
	BaseURL string // Base URL the service is reachable on (used by PDF export)

	Catalog  CatalogConfig
	Feed     FeedConfig
	Database DatabaseConfig
	Images   ImageConfig
	Export   ExportConfig
	Logging  LoggingConfig
}

// CatalogConfig controls pagination and sessions
type CatalogConfig struct {
	PageSize   int
	LeadSlots  int
	SessionTTL time.Duration
}

// FeedConfig selects and locates the product feed
type FeedConfig struct {
	Source          string
	Path            string
	URL             string
	DriveFileID     string
	CredentialsPath string
	Timeout         time.Duration
}

// DatabaseConfig locates the PostgreSQL products table
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ImageConfig controls local thumbnail generation
type ImageConfig struct {
	Thumbnails bool
	CacheDir   string
}

// ExportConfig controls PDF export
type ExportConfig struct {
	ChromePath string
	Timeout    time.Duration
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level  string
	Format string // "console" or "json"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads the configuration using lookup, which has the signature of os.LookupEnv
func LoadFrom(lookup func(string) (string, bool)) (*Config, error) {
	r := reader{lookup: lookup}

	port := strings.TrimPrefix(r.str("PORT", "8080"), ":")
	cfg := &Config{
		Env:     r.str("ENV", "development"),
		Addr:    "0.0.0.0:" + port,
		BaseURL: strings.TrimSuffix(r.str("BASE_URL", "http://localhost:"+port), "/"),
		Catalog: CatalogConfig{
			PageSize:   r.integer("CATALOG_PAGE_SIZE", 3),
			LeadSlots:  r.integer("CATALOG_LEAD_SLOTS", 0),
			SessionTTL: r.duration("SESSION_TTL", 30*time.Minute),
		},
		Feed: FeedConfig{
			Source:          strings.ToLower(r.str("CATALOG_SOURCE", SourceFile)),
			Path:            r.str("CATALOG_FEED_PATH", "products.json"),
			URL:             r.str("CATALOG_FEED_URL", ""),
			DriveFileID:     r.str("CATALOG_DRIVE_FILE_ID", ""),
			CredentialsPath: r.str("GOOGLE_APPLICATION_CREDENTIALS", ""),
			Timeout:         r.duration("FEED_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			URL:      r.str("DATABASE_URL", ""),
			Host:     r.str("DB_HOST", ""),
			Port:     r.str("DB_PORT", "5432"),
			User:     r.str("DB_USER", ""),
			Password: r.str("DB_PASSWORD", ""),
			Name:     r.str("DB_NAME", ""),
			SSLMode:  r.str("DB_SSLMODE", "disable"),
		},
		Images: ImageConfig{
			Thumbnails: r.boolean("CATALOG_THUMBNAILS", false),
			CacheDir:   r.str("IMAGE_CACHE_DIR", "cache/images"),
		},
		Export: ExportConfig{
			ChromePath: r.str("CHROME_PATH", ""),
			Timeout:    r.duration("EXPORT_TIMEOUT", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:  r.str("LOG_LEVEL", "info"),
			Format: r.str("LOG_FORMAT", ""),
		},
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
		if cfg.IsProduction() {
			cfg.Logging.Format = "json"
		}
	}

	if len(r.errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(r.errs, "; "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the selected feed source is fully configured
func (c *Config) Validate() error {
	if c.Catalog.PageSize < 1 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be at least 1")
	}
	if c.Catalog.LeadSlots < 0 || c.Catalog.LeadSlots >= c.Catalog.PageSize {
		return fmt.Errorf("CATALOG_LEAD_SLOTS must be between 0 and CATALOG_PAGE_SIZE-1")
	}

	switch c.Feed.Source {
	case SourceFile:
		if c.Feed.Path == "" {
			return fmt.Errorf("CATALOG_FEED_PATH is required for the file source")
		}
	case SourceHTTP:
		if c.Feed.URL == "" {
			return fmt.Errorf("CATALOG_FEED_URL is required for the http source")
		}
	case SourceDrive:
		if c.Feed.DriveFileID == "" || c.Feed.CredentialsPath == "" {
			return fmt.Errorf("CATALOG_DRIVE_FILE_ID and GOOGLE_APPLICATION_CREDENTIALS are required for the drive source")
		}
	case SourcePostgres:
		if _, err := c.Database.ConnString(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q (valid: file, http, drive, postgres)", c.Feed.Source)
	}
	return nil
}

// ConnString returns DATABASE_URL or builds a connection string from DB_* variables
func (d DatabaseConfig) ConnString() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode), nil
}

type reader struct {
	lookup func(string) (string, bool)
	errs   []string
}

func (r *reader) str(key, def string) string {
	if v, ok := r.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *reader) integer(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s: %q is not an integer", key, v))
		return def
	}
	return n
}

func (r *reader) boolean(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s: %q is not a boolean", key, v))
		return def
	}
	return b
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s: %q is not a duration", key, v))
		return def
	}
	return d
}
