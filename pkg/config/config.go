package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	Port   string `yaml:"port"`
	AppEnv string `yaml:"app_env"`

	DBDriver    string `yaml:"db_driver"`
	DatabaseURL string `yaml:"database_url"`

	JWTSecret string        `yaml:"jwt_secret"`
	JWTExpiry time.Duration `yaml:"jwt_expiry"`

	ClientURLs []string `yaml:"client_urls"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	PublicDir         string `yaml:"public_dir"`
	DefaultAvatarPath string `yaml:"default_avatar_path"`
	AvatarUploadPath  string `yaml:"avatar_upload_path"`
	AvatarURLPrefix   string `yaml:"avatar_url_prefix"`
	MaxFileSize       int64  `yaml:"max_file_size"`

	StorageBackend string `yaml:"storage_backend"`
	S3Bucket       string `yaml:"s3_bucket"`
	S3Region       string `yaml:"s3_region"`
	S3Endpoint     string `yaml:"s3_endpoint"`
	S3AccessKey    string `yaml:"s3_access_key"`
	S3SecretKey    string `yaml:"s3_secret_key"`
	S3PublicURL    string `yaml:"s3_public_url"`
	S3KeyPrefix    string `yaml:"s3_key_prefix"`
}

// Defaults returns a development configuration. The JWT secret must be
// overridden in production; Validate enforces it.
func Defaults() *Config {
	return &Config{
		Port:              "8080",
		AppEnv:            EnvDevelopment,
		DBDriver:          DriverPostgres,
		DatabaseURL:       "host=localhost user=postgres password=postgres dbname=taskmanager port=5432 sslmode=disable",
		JWTSecret:         "your-secret-key-change-in-production",
		JWTExpiry:         5 * 24 * time.Hour,
		ClientURLs:        []string{"http://localhost:5173"},
		LogLevel:          "info",
		LogFormat:         "json",
		PublicDir:         "public",
		DefaultAvatarPath: "/defaults/default-avatar.png",
		AvatarUploadPath:  "uploads/avatars",
		AvatarURLPrefix:   "/uploads/avatars",
		MaxFileSize:       5 * 1024 * 1024,
		StorageBackend:    StorageLocal,
		S3Region:          "us-east-1",
		S3KeyPrefix:       "avatars",
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, a .env file if present, and finally the process environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.PublicDir = getEnv("PUBLIC_DIR", c.PublicDir)
	c.DefaultAvatarPath = getEnv("DEFAULT_AVATAR_PATH", c.DefaultAvatarPath)
	c.AvatarUploadPath = getEnv("AVATAR_UPLOAD_PATH", c.AvatarUploadPath)
	c.AvatarURLPrefix = getEnv("AVATAR_URL_PREFIX", c.AvatarURLPrefix)
	c.StorageBackend = getEnv("STORAGE_BACKEND", c.StorageBackend)
	c.S3Bucket = getEnv("S3_BUCKET", c.S3Bucket)
	c.S3Region = getEnv("S3_REGION", c.S3Region)
	c.S3Endpoint = getEnv("S3_ENDPOINT", c.S3Endpoint)
	c.S3AccessKey = getEnv("S3_ACCESS_KEY", c.S3AccessKey)
	c.S3SecretKey = getEnv("S3_SECRET_KEY", c.S3SecretKey)
	c.S3PublicURL = getEnv("S3_PUBLIC_URL", c.S3PublicURL)
	c.S3KeyPrefix = getEnv("S3_KEY_PREFIX", c.S3KeyPrefix)

	if v := os.Getenv("CLIENT_URL"); v != "" {
		c.ClientURLs = splitList(v)
	}

	if exp := os.Getenv("JWT_EXPIRY"); exp != "" {
		parsed, err := ParseExpiry(exp)
		if err != nil {
			return fmt.Errorf("JWT_EXPIRY: %w", err)
		}
		c.JWTExpiry = parsed
	}

	if size := os.Getenv("MAX_FILE_SIZE"); size != "" {
		parsed, err := strconv.ParseInt(size, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_FILE_SIZE: %w", err)
		}
		c.MaxFileSize = parsed
	}
	return nil
}

// Validate reports configuration that would make the server misbehave.
func (c *Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret is required"))
	}
	if c.AppEnv == EnvProduction && c.JWTSecret == Defaults().JWTSecret {
		errs = append(errs, errors.New("jwt secret must be set in production"))
	}
	if c.JWTExpiry <= 0 {
		errs = append(errs, errors.New("jwt expiry must be positive"))
	}
	if c.MaxFileSize <= 0 {
		errs = append(errs, errors.New("max file size must be positive"))
	}
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown db driver %q", c.DBDriver))
	}
	switch c.StorageBackend {
	case StorageLocal:
	case StorageS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("s3 bucket is required for s3 storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.StorageBackend))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}

	return errors.Join(errs...)
}

// ParseExpiry accepts a Go duration ("120h") or the "N days"/"N day"/"Nd"
// form used by older deployments.
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	lower := strings.ToLower(s)
	for _, suffix := range []string{"days", "day", "d"} {
		if !strings.HasSuffix(lower, suffix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(lower, suffix)))
		if err != nil {
			break
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("invalid duration %q", s)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
