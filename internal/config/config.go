package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"`
	Files    FilesConfig    `mapstructure:"files"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// RateLimitPerSecond and RateLimitBurst configure the request rate
	// limiter. A non-positive rate disables limiting.
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second"`
	RateLimitBurst     int     `mapstructure:"rate_limit_burst"`

	// AllowedOrigins lists the origins permitted by CORS.
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// MetricsEnabled exposes the Prometheus /metrics endpoint when true.
	MetricsEnabled bool `mapstructure:"metrics_enabled"`
}

// Database drivers supported by the catalog.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig contains the persistence settings. The memory driver runs
// the catalog against the seeded in-memory store and needs no URL.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	URL    string `mapstructure:"url"    validate:"required_if=Driver postgres"`
}

// AuthConfig contains the token validation settings. This service never
// issues tokens over HTTP; it only validates them and reads their claims.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes bounds tokens minted by the tokengen CLI.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"gt=0"`

	// CityClaimKey names the claim holding the caller's tenant city. The
	// authorizer compares its value against the target city's name.
	CityClaimKey string `mapstructure:"city_claim_key" validate:"required"`
}

// MailConfig contains the addresses used for operational notifications.
type MailConfig struct {
	From string `mapstructure:"from" validate:"omitempty,email"`
	To   string `mapstructure:"to"   validate:"omitempty,email"`
}

// FilesConfig contains the settings for the file download endpoint.
type FilesConfig struct {
	// Dir is the directory served by /api/v1/files. Empty disables the
	// endpoint.
	Dir string `mapstructure:"dir"`
}
