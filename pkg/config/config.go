package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	CORS         CORSConfig
	Log          LogConfig
	LMS          LMSConfig
	LearningPath LearningPathConfig
	Exports      ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	TablePrefix  string
}

type RedisConfig struct {
	URL      string
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// LMSConfig describes the host LMS whose tables are read.
type LMSConfig struct {
	BaseURL  string
	Timezone string
}

// Location resolves the configured timezone, falling back to UTC.
func (c LMSConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LearningPathConfig tunes progress aggregation.
type LearningPathConfig struct {
	CacheEnabled            bool
	CacheTTL                time.Duration
	LineConcurrency         int
	ExistsRequirePublished  bool
	CreditFieldShortname    string
	CatalogueFieldShortname string
}

// ExportsConfig gates the CSV/PDF export endpoint.
type ExportsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		TablePrefix:  v.GetString("DB_TABLE_PREFIX"),
	}

	cfg.Redis = RedisConfig{
		URL:      v.GetString("REDIS_URL"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Issuer:     v.GetString("JWT_ISSUER"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.LMS = LMSConfig{
		BaseURL:  strings.TrimRight(v.GetString("LMS_BASE_URL"), "/"),
		Timezone: v.GetString("LMS_TIMEZONE"),
	}

	concurrency := v.GetInt("LEARNINGPATH_LINE_CONCURRENCY")
	if concurrency <= 0 {
		concurrency = 1
	}
	cfg.LearningPath = LearningPathConfig{
		CacheEnabled:            v.GetBool("LEARNINGPATH_CACHE_ENABLED"),
		CacheTTL:                parseDuration(v.GetString("LEARNINGPATH_CACHE_TTL"), 30*time.Second),
		LineConcurrency:         concurrency,
		ExistsRequirePublished:  v.GetBool("LEARNINGPATH_EXISTS_REQUIRE_PUBLISHED"),
		CreditFieldShortname:    v.GetString("LEARNINGPATH_CREDIT_FIELD"),
		CatalogueFieldShortname: v.GetString("LEARNINGPATH_CATALOGUE_FIELD"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "moodle")
	v.SetDefault("DB_PASSWORD", "moodle")
	v.SetDefault("DB_NAME", "moodle")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_TABLE_PREFIX", "mdl_")

	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "learningpath-api")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("LMS_BASE_URL", "http://localhost")
	v.SetDefault("LMS_TIMEZONE", "UTC")

	v.SetDefault("LEARNINGPATH_CACHE_ENABLED", false)
	v.SetDefault("LEARNINGPATH_CACHE_TTL", "30s")
	v.SetDefault("LEARNINGPATH_LINE_CONCURRENCY", 4)
	v.SetDefault("LEARNINGPATH_EXISTS_REQUIRE_PUBLISHED", false)
	v.SetDefault("LEARNINGPATH_CREDIT_FIELD", "credit")
	v.SetDefault("LEARNINGPATH_CATALOGUE_FIELD", "code")

	v.SetDefault("ENABLE_EXPORTS", true)
}

// viper reports a missing explicit config file as an *fs.PathError rather than
// ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
