// Package config resolves runtime settings for the formwizard CLI from
// defaults, an optional config file, an optional dotenv file, and
// FORMWIZARD_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. FORMWIZARD_LOGIN_DELAY.
const EnvPrefix = "FORMWIZARD"

const (
	keyLoginEmail    = "login.email"
	keyLoginPassword = "login.password"
	keyLoginDelay    = "login.delay"
	keyOutputFormat  = "output.format"
	keyLogLevel      = "log.level"
	keySchemaDir     = "schema.dir"
)

// Config is the resolved settings snapshot.
type Config struct {
	LoginEmail    string
	LoginPassword string
	LoginDelay    time.Duration
	OutputFormat  string
	LogLevel      slog.Level
	SchemaDir     string
}

// Sources names the optional files consulted by Load. Empty paths are
// skipped; a missing DotEnv file is ignored, a missing File is an error.
type Sources struct {
	File   string
	DotEnv string
}

// Load resolves a Config.
func Load(src Sources) (Config, error) {
	if src.DotEnv != "" {
		if err := loadDotEnv(src.DotEnv); err != nil {
			return Config{}, err
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault(keyLoginEmail, "admin@fiap.com")
	v.SetDefault(keyLoginPassword, "123456")
	v.SetDefault(keyLoginDelay, 1500*time.Millisecond)
	v.SetDefault(keyOutputFormat, "json")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keySchemaDir, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if src.File != "" {
		v.SetConfigFile(src.File)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", src.File, err)
		}
	}

	level, err := parseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return Config{}, err
	}
	delay := v.GetDuration(keyLoginDelay)
	if delay < 0 {
		return Config{}, fmt.Errorf("config: %s must not be negative", keyLoginDelay)
	}

	return Config{
		LoginEmail:    v.GetString(keyLoginEmail),
		LoginPassword: v.GetString(keyLoginPassword),
		LoginDelay:    delay,
		OutputFormat:  strings.ToLower(strings.TrimSpace(v.GetString(keyOutputFormat))),
		LogLevel:      level,
		SchemaDir:     strings.TrimSpace(v.GetString(keySchemaDir)),
	}, nil
}

// loadDotEnv does not override variables already present in the process.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: dotenv %s: %w", path, err)
	}
	return nil
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("config: %s: %w", keyLogLevel, err)
	}
	return level, nil
}
