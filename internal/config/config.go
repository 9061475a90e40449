package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMongoDB  = "mongodb"
)

// Config holds all API service configuration.
type Config struct {
	HTTPAddress string

	// StorageBackend selects which persistence flavor backs workflows and
	// credential stores: "postgres" or "mongodb".
	StorageBackend string

	PostgresDSN   string
	MongoURI      string
	MongoDatabase string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	SessionJWTSecret string
}

// LoadConfig loads configuration from files and environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Configure environment variables - do this BEFORE reading config
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"HTTPAddress":      "HTTP_ADDRESS",
		"StorageBackend":   "STORAGE_BACKEND",
		"PostgresDSN":      "POSTGRES_DSN",
		"MongoURI":         "MONGO_URI",
		"MongoDatabase":    "MONGO_DATABASE",
		"RedisAddress":     "REDIS_ADDRESS",
		"RedisPassword":    "REDIS_PASSWORD",
		"RedisDB":          "REDIS_DB",
		"SessionJWTSecret": "SESSION_JWT_SECRET",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	v.SetConfigName("taskloom_config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.taskloom")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTPAddress", ":8080")
	v.SetDefault("StorageBackend", StorageBackendPostgres)
	v.SetDefault("MongoDatabase", "taskloom")
	v.SetDefault("RedisAddress", "localhost:6379")
	v.SetDefault("RedisDB", 0)
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case StorageBackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when storage backend is %q", c.StorageBackend)
		}
	case StorageBackendMongoDB:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when storage backend is %q", c.StorageBackend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	if c.SessionJWTSecret == "" {
		return fmt.Errorf("SESSION_JWT_SECRET is required")
	}

	return nil
}
