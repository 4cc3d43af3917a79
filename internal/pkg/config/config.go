package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, upstream URLs, secrets)
// - default: Values common across all environments (timezone, thresholds, windows)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Registry RegistryConfig
	Booking  BookingPlatformConfig
	Matching MatchingConfig
	Groups   GroupsConfig
	Stats    StatsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"roster"`
	Password string `envconfig:"DB_PASSWORD" default:""`
	DBName   string `envconfig:"DB_NAME" default:"roster"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Copenhagen"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Backend is one of "postgres", "redis" or "memory".
type CacheConfig struct {
	Backend   string        `envconfig:"CACHE_BACKEND" default:"memory"`
	Freshness time.Duration `envconfig:"CACHE_FRESHNESS" default:"15m"`
	// stale entries stay readable for fallback until Retention passes
	Retention time.Duration `envconfig:"CACHE_RETENTION" default:"168h"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Data-Source"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Copenhagen"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"3600"` // 1*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"720h"`
}

type RegistryConfig struct {
	URL          string        `envconfig:"REGISTRY_URL" required:"true"`
	Association  string        `envconfig:"REGISTRY_ASSOCIATION" default:""`
	Key          string        `envconfig:"REGISTRY_KEY" default:""`
	AddressBook  string        `envconfig:"REGISTRY_ADDRESS_BOOK" default:""`
	Timeout      time.Duration `envconfig:"REGISTRY_TIMEOUT" default:"20s"`
	UserAgent    string        `envconfig:"REGISTRY_USER_AGENT" default:"club-roster/1.0"`
	MemberFilter string        `envconfig:"REGISTRY_MEMBER_TYPE" default:"medlem"`
}

type BookingPlatformConfig struct {
	BaseURL     string        `envconfig:"BOOKING_BASE_URL" required:"true"`
	BearerToken string        `envconfig:"BOOKING_BEARER_TOKEN" default:""`
	Timeout     time.Duration `envconfig:"BOOKING_TIMEOUT" default:"20s"`
	UserAgent   string        `envconfig:"BOOKING_USER_AGENT" default:"club-roster/1.0"`
}

// Strategy is "first" (registry order, first acceptable account) or "best".
type MatchingConfig struct {
	Strategy           string  `envconfig:"MATCH_STRATEGY" default:"first"`
	EmailThreshold     float64 `envconfig:"MATCH_EMAIL_THRESHOLD" default:"0.90"`
	FirstNameThreshold float64 `envconfig:"MATCH_FIRST_NAME_THRESHOLD" default:"0.85"`
	FullNameThreshold  float64 `envconfig:"MATCH_FULL_NAME_THRESHOLD" default:"0.85"`
}

type GroupsConfig struct {
	// Titles listed first win when a member sits in several groups.
	// Empty keeps last-write-wins.
	Precedence []string `envconfig:"GROUP_PRECEDENCE" default:""`
}

type StatsConfig struct {
	Keywords        []string `envconfig:"STATS_KEYWORDS" default:"tennis,padel"`
	CapacityMinutes int      `envconfig:"STATS_CAPACITY_MINUTES" default:"840"` // 14h
	Basis           string   `envconfig:"STATS_BASIS" default:"duration"`
	SlotMinutes     int      `envconfig:"STATS_SLOT_MINUTES" default:"60"`
	TimeZone        string   `envconfig:"STATS_TIMEZONE" default:"Europe/Copenhagen"`
	MaxWindowDays   int      `envconfig:"STATS_MAX_WINDOW_DAYS" default:"31"`
}

func (c *JWTConfig) TokenDuration() (time.Duration, error) {
	return time.ParseDuration(c.Duration)
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Location falls back to UTC when the zone database lacks the configured name.
func (c *StatsConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Europe/Copenhagen",
			MaxConns: 4,
		},
		Cache: CacheConfig{
			Backend:   "memory",
			Freshness: 15 * time.Minute,
			Retention: 24 * time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Europe/Copenhagen",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 3600,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Registry: RegistryConfig{
			URL:          "http://localhost:0/registry",
			Timeout:      2 * time.Second,
			UserAgent:    "club-roster-test",
			MemberFilter: "medlem",
		},
		Booking: BookingPlatformConfig{
			BaseURL:   "http://localhost:0/booking",
			Timeout:   2 * time.Second,
			UserAgent: "club-roster-test",
		},
		Matching: MatchingConfig{
			Strategy:           "first",
			EmailThreshold:     0.90,
			FirstNameThreshold: 0.85,
			FullNameThreshold:  0.85,
		},
		Stats: StatsConfig{
			Keywords:        []string{"tennis", "padel"},
			CapacityMinutes: 840,
			Basis:           "duration",
			SlotMinutes:     60,
			TimeZone:        "UTC",
			MaxWindowDays:   31,
		},
	}
}
