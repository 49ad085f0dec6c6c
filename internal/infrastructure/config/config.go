package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/soleneo/backend/internal/domain/extraction"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Import   ImportConfig
	Catalog  CatalogConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// ImportConfig holds supplier feed import settings
type ImportConfig struct {
	Delimiter string // field separator in the supplier feed
	MaxErrors int    // cap on collected row errors per run
}

// CatalogConfig holds the catalog normalization reference data.
// Families and supplier codes arrive as raw feed values; the maps
// translate them into the store's own taxonomy.
type CatalogConfig struct {
	FamilyCategories map[string]string      // feed family -> category name
	CategoryColors   map[string]string      // category name -> display color
	SupplierNames    map[string]string      // feed supplier code -> supplier name
	BrandRules       []extraction.BrandRule // ordered, first match wins
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SOLENEO_ prefix (e.g., SOLENEO_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("SOLENEO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Import: ImportConfig{
			Delimiter: v.GetString("import.delimiter"),
			MaxErrors: v.GetInt("import.max_errors"),
		},
		Catalog: CatalogConfig{
			FamilyCategories: v.GetStringMapString("catalog.family_categories"),
			CategoryColors:   v.GetStringMapString("catalog.category_colors"),
			SupplierNames:    v.GetStringMapString("catalog.supplier_names"),
		},
	}

	// Brand rules are a list of tables, so they need UnmarshalKey
	if err := v.UnmarshalKey("catalog.brand_rules", &cfg.Catalog.BrandRules); err != nil {
		return nil, fmt.Errorf("error parsing catalog.brand_rules: %w", err)
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "soleneo-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "soleneo"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		// Supplier feeds arrive as a single request body
		cfg.HTTP.MaxBodySize = 20 << 20 // 20MB
	}
	// NOTE: CORS origins are intentionally not given a default fallback to "*".
	// An empty list means no cross-origin requests are allowed until explicitly configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Import.Delimiter == "" {
		cfg.Import.Delimiter = ";"
	}
	if cfg.Import.MaxErrors == 0 {
		cfg.Import.MaxErrors = 500
	}
	if len(cfg.Catalog.FamilyCategories) == 0 {
		cfg.Catalog.FamilyCategories = defaultFamilyCategories()
	}
	if len(cfg.Catalog.CategoryColors) == 0 {
		cfg.Catalog.CategoryColors = defaultCategoryColors()
	}
	if len(cfg.Catalog.SupplierNames) == 0 {
		cfg.Catalog.SupplierNames = defaultSupplierNames()
	}
	if len(cfg.Catalog.BrandRules) == 0 {
		cfg.Catalog.BrandRules = extraction.DefaultBrandRules()
	}
}

// defaultFamilyCategories maps the feed's family labels to store categories.
// Lookups normalize the feed value to lower case before matching.
func defaultFamilyCategories() map[string]string {
	return map[string]string{
		"onduleur":       "Onduleurs",
		"micro-onduleur": "Micro-onduleurs",
		"batterie":       "Batteries",
		"panneau":        "Panneaux solaires",
		"ballon":         "Ballons thermodynamiques",
		"structure":      "Structures de fixation",
		"cable":          "Câbles et connectique",
		"coffret":        "Coffrets de protection",
		"accessoire":     "Accessoires",
	}
}

func defaultCategoryColors() map[string]string {
	return map[string]string{
		"Onduleurs":                "#F59E0B",
		"Micro-onduleurs":          "#FBBF24",
		"Batteries":                "#3B82F6",
		"Panneaux solaires":        "#10B981",
		"Ballons thermodynamiques": "#EF4444",
		"Structures de fixation":   "#6B7280",
		"Câbles et connectique":    "#8B5CF6",
		"Coffrets de protection":   "#EC4899",
		"Accessoires":              "#14B8A6",
	}
}

func defaultSupplierNames() map[string]string {
	return map[string]string{
		"vmi": "VMI Distribution",
		"ase": "Alliance Solaire Energie",
		"sfx": "Solarfix",
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	// Validate connection pool settings
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if len(c.Import.Delimiter) != 1 {
		return fmt.Errorf("import.delimiter must be a single character, got %q", c.Import.Delimiter)
	}

	// Brand rules must compile before the first import runs
	if _, err := extraction.CompileBrandRules(c.Catalog.BrandRules); err != nil {
		return fmt.Errorf("invalid catalog.brand_rules: %w", err)
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
