package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Cache    CacheConfig
	NLU      NLUConfig
	Auth     AuthConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds catalog store configuration
type DatabaseConfig struct {
	Driver             string `validate:"oneof=postgres sqlite"`
	DSN                string // full postgres connection string (takes precedence)
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	SQLitePath         string
	MaxConnections     int           `validate:"gte=1"`
	MaxIdleConnections int           `validate:"gte=0"`
	QueryTimeout       time.Duration `validate:"gt=0"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port             int `validate:"gte=1,lte=65535"`
	Host             string
	GinMode          string
	AllowedOrigins   string
	MaxMessageLength int `validate:"gte=0"`
}

// CacheConfig holds the catalog read cache configuration. Size 0 disables it.
type CacheConfig struct {
	Size int           `validate:"gte=0"`
	TTL  time.Duration `validate:"gte=0"`
}

// NLUConfig holds the tunable scoring constants of the NLU pipeline
type NLUConfig struct {
	SubstringWeight int     `yaml:"substring_weight" validate:"gte=0"`
	TokenWeight     int     `yaml:"token_weight" validate:"gte=0"`
	StemWeight      int     `yaml:"stem_weight" validate:"gte=0"`
	AllOfBonus      int     `yaml:"all_of_bonus" validate:"gte=0"`
	CostVerbBonus   int     `yaml:"cost_verb_bonus" validate:"gte=0"`
	FuzzyThreshold  float64 `yaml:"fuzzy_threshold" validate:"gt=0,lte=1"`
	MaxEntities     int     `yaml:"max_entities" validate:"gte=1,lte=2"`
	Language        string  `yaml:"language" validate:"required"`
}

// AuthConfig holds account and token configuration
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration `validate:"gt=0"`
	BcryptCost int           `validate:"gte=4,lte=31"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string `validate:"oneof=json text"`
	File   string
}

// DefaultNLU returns the scoring constants the classifier was tuned with
func DefaultNLU() NLUConfig {
	return NLUConfig{
		SubstringWeight: 2,
		TokenWeight:     1,
		StemWeight:      1,
		AllOfBonus:      3,
		CostVerbBonus:   3,
		FuzzyThreshold:  0.75,
		MaxEntities:     2,
		Language:        "french",
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	nlu := DefaultNLU()
	if path := getEnv("NLU_CONFIG_FILE", ""); path != "" {
		fromFile, err := LoadNLUFile(path, nlu)
		if err != nil {
			return nil, err
		}
		nlu = fromFile
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Driver:             getEnv("DB_DRIVER", "sqlite"),
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "railchat"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			SQLitePath:         getEnv("SQLITE_PATH", "./database/railchat.db"),
			MaxConnections:     getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DB_MAX_IDLE_CONNECTIONS", 2),
			QueryTimeout:       getEnvAsDuration("DB_QUERY_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			Port:             getEnvAsInt("SERVER_PORT", 8080),
			Host:             getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:          getEnv("GIN_MODE", "release"),
			AllowedOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "*"),
			MaxMessageLength: getEnvAsInt("CHAT_MAX_LENGTH", 500),
		},
		Cache: CacheConfig{
			Size: getEnvAsInt("CACHE_SIZE", 256),
			TTL:  getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		},
		NLU: NLUConfig{
			SubstringWeight: getEnvAsInt("NLU_SUBSTRING_WEIGHT", nlu.SubstringWeight),
			TokenWeight:     getEnvAsInt("NLU_TOKEN_WEIGHT", nlu.TokenWeight),
			StemWeight:      getEnvAsInt("NLU_STEM_WEIGHT", nlu.StemWeight),
			AllOfBonus:      getEnvAsInt("NLU_ALL_OF_BONUS", nlu.AllOfBonus),
			CostVerbBonus:   getEnvAsInt("NLU_COST_VERB_BONUS", nlu.CostVerbBonus),
			FuzzyThreshold:  getEnvAsFloat("NLU_FUZZY_THRESHOLD", nlu.FuzzyThreshold),
			MaxEntities:     getEnvAsInt("NLU_MAX_ENTITIES", nlu.MaxEntities),
			Language:        getEnv("NLU_LANGUAGE", nlu.Language),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			TokenTTL:   getEnvAsDuration("JWT_TTL", time.Hour),
			BcryptCost: getEnvAsInt("BCRYPT_COST", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			File:   getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadNLUFile overlays the scoring constants found in a YAML file on base.
// Keys absent from the file keep their base value.
func LoadNLUFile(path string, base NLUConfig) (NLUConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read NLU config %s: %w", path, err)
	}
	out := base
	if err := yaml.Unmarshal(data, &out); err != nil {
		return base, fmt.Errorf("failed to parse NLU config %s: %w", path, err)
	}
	return out, nil
}

// Validate checks every section against its constraints
func (c *Config) Validate() error {
	v := validator.New()
	sections := []interface{}{c.Database, c.Server, c.Cache, c.NLU, c.Auth, c.Logging}
	for _, s := range sections {
		if err := v.Struct(s); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return nil
}

// GetDSN returns the connection string for the configured driver
func (c *Config) GetDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.SQLitePath
	}

	if c.Database.DSN != "" {
		return c.Database.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logrus.Warnf("Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		logrus.Warnf("Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		logrus.Warnf("Invalid duration value for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return value
}
