package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Svynct/ignite-rocketshoes/internal/log"
)

type Application struct {
	Env     string `mapstructure:"env"      json:"env"`
	Host    string `mapstructure:"host"     json:"host"`
	LogPath string `mapstructure:"log_path" json:"log_path"`
	Port    int    `mapstructure:"port"     json:"port"`
}

type Database struct {
	Name           string `mapstructure:"name"            json:"name"`
	Host           string `mapstructure:"host"            json:"host"`
	MigrationPath  string `mapstructure:"migration_path"  json:"migration_path"`
	Password       string `mapstructure:"password"        json:"-"`
	Username       string `mapstructure:"username"        json:"username"`
	MaxConnections int    `mapstructure:"max_connections" json:"max_connections"`
	MinConnections int    `mapstructure:"min_connections" json:"min_connections"`
	Port           uint16 `mapstructure:"port"            json:"port"`
}

type Cache struct {
	Host     string `mapstructure:"host"     json:"host"`
	Password string `mapstructure:"password" json:"-"`
	Database int    `mapstructure:"database" json:"database"`
	Port     uint16 `mapstructure:"port"     json:"port"`
}

type Otel struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
	Host    string `mapstructure:"host"    json:"host"`
	Port    int    `mapstructure:"port"    json:"port"`
}

type Catalog struct {
	BaseURL string        `mapstructure:"base_url" json:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"  json:"timeout"`
}

// Storage selects the durable key-value backend holding the cart snapshot.
// Driver is one of memory, file, redis or postgres.
type Storage struct {
	Driver    string `mapstructure:"driver"    json:"driver"`
	Key       string `mapstructure:"key"       json:"key"`
	Directory string `mapstructure:"directory" json:"directory"`
}

type Config struct {
	Database    `mapstructure:"db"          json:"db"`
	Cache       `mapstructure:"cache"       json:"cache"`
	Application `mapstructure:"application" json:"application"`
	Otel        `mapstructure:"otel"        json:"otel"`
	Catalog     `mapstructure:"catalog"     json:"catalog"`
	Storage     `mapstructure:"storage"     json:"storage"`
}

const DefaultStorageKey = "@RocketShoes:cart"

var (
	once   sync.Once
	config *Config
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.env", "development")
	v.SetDefault("application.host", "localhost")
	v.SetDefault("application.port", 8080)
	v.SetDefault("catalog.base_url", "http://localhost:3333")
	v.SetDefault("catalog.timeout", 10*time.Second)
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.key", DefaultStorageKey)
	v.SetDefault("storage.directory", ".storefront")
	v.SetDefault("db.migration_path", "file://migrations")
	v.SetDefault("db.max_connections", 10)
	v.SetDefault("db.min_connections", 1)
	v.SetDefault("otel.host", "otel-collector")
	v.SetDefault("otel.port", 4317)
}

// Load reads env/<filename>.yaml under the given search paths, then applies
// STOREFRONT_* environment overrides. A missing file is not an error.
func Load(c context.Context, filename string, paths ...string) (Config, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "config Load").
		Str("filename", filename).
		Logger()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix("storefront")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	logger = logger.With().Str(log.KeyProcess, "reading config").Logger()
	logger.Info().Msg("reading config")
	err := v.ReadInConfig()
	if err != nil {
		notFound := viper.ConfigFileNotFoundError{}
		if !errors.As(err, &notFound) {
			err = fmt.Errorf("error when reading config with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return Config{}, err
		}
		logger.Warn().Err(err).Msg("config file not found, using defaults")
	}
	logger.Info().Msg("read config")

	logger = logger.With().Str(log.KeyProcess, "unmarshaling config").Logger()
	logger.Info().Msg("unmarshaling config")
	cfg := Config{}
	err = v.Unmarshal(&cfg)
	if err != nil {
		err = fmt.Errorf("error unmarshaling config with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return Config{}, err
	}
	logger.Info().Any(log.KeyConfig, cfg).Msg("unmarshaled config")

	return cfg, nil
}

// InitConfig loads the process configuration once from ./env and exits the
// process when it cannot be read.
func InitConfig(c context.Context, filename string) *Config {
	once.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "main InitConfig").
			Logger()

		cfg, err := Load(c, filename, "./env", ".")
		if err != nil {
			logger.Fatal().Err(err).Msg(err.Error())
		}
		config = &cfg
	})
	return config
}
