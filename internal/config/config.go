// Package config loads clozeit settings from defaults, an optional config
// file and CLOZEIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/clozeit/internal/exercise"
	"github.com/abhisek/clozeit/internal/passage"
)

// EnvPrefix is prepended to every environment override, e.g.
// CLOZEIT_SERVER_PORT for server.port.
const EnvPrefix = "CLOZEIT"

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Exercise ExerciseConfig `mapstructure:"exercise"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host        string   `mapstructure:"host"`
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// ExerciseConfig holds the defaults offered when setting up an exercise.
type ExerciseConfig struct {
	Mode         string `mapstructure:"mode"`
	GapFrequency int    `mapstructure:"gap_frequency"`
	Topic        string `mapstructure:"topic"`
	Difficulty   string `mapstructure:"difficulty"`
}

// Options converts the exercise defaults into builder options. Call
// Validate first; an invalid mode falls back to C-test.
func (e ExerciseConfig) Options() exercise.Options {
	mode, err := exercise.ParseMode(e.Mode)
	if err != nil {
		mode = exercise.ModeCTest
	}
	return exercise.Options{Mode: mode, GapFrequency: e.GapFrequency}
}

// Load reads configuration. When path is empty a file named clozeit.{toml,yaml,json}
// is looked up in the working directory and then in $XDG_CONFIG_HOME/clozeit;
// a missing file is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("clozeit")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("exercise.mode", string(exercise.ModeCTest))
	v.SetDefault("exercise.gap_frequency", 0)
	v.SetDefault("exercise.topic", string(passage.TopicTechnology))
	v.SetDefault("exercise.difficulty", string(passage.DifficultyBeginner))
}

// Validate rejects values the rest of the program cannot use.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format %q (want text or json)", c.Log.Format)
	}
	if _, err := exercise.ParseMode(c.Exercise.Mode); err != nil {
		return fmt.Errorf("config: exercise.mode: %w", err)
	}
	if g := c.Exercise.GapFrequency; g < 0 || g > exercise.MaxGapFrequency {
		return fmt.Errorf("config: exercise.gap_frequency %d (want 0 for the default, or %d-%d)",
			g, exercise.MinGapFrequency, exercise.MaxGapFrequency)
	}
	if _, err := passage.ParseTopic(c.Exercise.Topic); err != nil {
		return fmt.Errorf("config: exercise.topic: %w", err)
	}
	if _, err := passage.ParseDifficulty(c.Exercise.Difficulty); err != nil {
		return fmt.Errorf("config: exercise.difficulty: %w", err)
	}
	return nil
}
