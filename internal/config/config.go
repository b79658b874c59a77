package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/conveyor/internal/calc"
	"github.com/Simplici0/conveyor/internal/logger"
)

const (
	defaultDBPath        = "./conveyor.db"
	defaultPort          = "8080"
	defaultEnv           = "dev"
	defaultMigrationsDir = "migrations"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath         string
	Port           string
	Env            string
	MigrationsDir  string
	ParametersFile string
	CatalogFile    string
	Log            logger.Options
}

// Load reads environment variables, after a best-effort .env, and returns a
// populated Config.
func Load() Config {
	loaded, dotenvErr := loadDotEnv(".env")

	cfg := Config{
		DBPath:         os.Getenv("DB_PATH"),
		Port:           os.Getenv("PORT"),
		Env:            strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))),
		MigrationsDir:  os.Getenv("MIGRATIONS_DIR"),
		ParametersFile: os.Getenv("PARAMETERS_FILE"),
		CatalogFile:    os.Getenv("CATALOG_FILE"),
		Log:            logger.FromEnv(),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = defaultMigrationsDir
	}

	log := logger.Named("config")
	if dotenvErr != nil {
		log.Warn().Err(dotenvErr).Msg("ignoring .env")
	} else if len(loaded) > 0 {
		log.Debug().Strs("keys", loaded).Msg("loaded .env")
	}
	if !cfg.IsDev() && cfg.ParametersFile == "" {
		log.Warn().Msg("PARAMETERS_FILE is not set; using built-in engineering constants")
	}

	return cfg
}

// IsDev reports whether the service runs in a development environment.
func (c Config) IsDev() bool {
	switch c.Env {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

// Parameters returns the engineering constants: the built-in defaults with
// any values from ParametersFile laid over them.
func (c Config) Parameters() (calc.Parameters, error) {
	p := calc.DefaultParameters()
	if c.ParametersFile == "" {
		return p, nil
	}

	f, err := os.Open(c.ParametersFile)
	if err != nil {
		return calc.Parameters{}, fmt.Errorf("open parameters file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return calc.Parameters{}, fmt.Errorf("parse parameters file: %w", err)
	}

	if issues := p.Check(); len(issues) > 0 {
		msgs := make([]string, 0, len(issues))
		for _, is := range issues {
			msgs = append(msgs, is.Field+": "+is.Message)
		}
		return calc.Parameters{}, fmt.Errorf("invalid parameters file %s: %s", c.ParametersFile, strings.Join(msgs, "; "))
	}
	return p, nil
}
