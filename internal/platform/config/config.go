package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config del proceso. Las tablas de juego (tiers, precios) viven en el catálogo, no acá.
type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	DBDSN  string `env:"DB_DSN"`
	AppEnv string `env:"APP_ENV" envDefault:"dev"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"pet-genetics"`

	// vacío = catálogo embebido
	CatalogPath string `env:"CATALOG_PATH"`

	// sin AUTH_VERIFY_URL se usa el header de debug (modo dev)
	AuthVerifyURL string        `env:"AUTH_VERIFY_URL"`
	AuthAPIKey    string        `env:"AUTH_API_KEY"`
	AuthTimeout   time.Duration `env:"AUTH_TIMEOUT" envDefault:"5s"`

	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) AuthEnabled() bool {
	return c.AuthVerifyURL != ""
}

// Load lee .env (si existe) y luego el entorno. Un .env ausente no es error.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
