// Package cfg loads the service settings.
//
// Values are layered: built-in defaults, then the YAML file named by CONFIG_FILE,
// then environment variables (optionally read from a .env file). The merged result
// is validated before it is handed to the caller.
package cfg

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"houseprice/internal/common"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	Server  ServerSettings  `yaml:"server"`
	Model   ModelSettings   `yaml:"model"`
	Log     LogSettings     `yaml:"log"`
	Metrics MetricsSettings `yaml:"metrics"`
	Train   TrainSettings   `yaml:"train"`
}

type ServerSettings struct {
	Port            int           `yaml:"port" env:"PORT" validate:"min=1,max=65535"`
	BindAddr        string        `yaml:"bindAddr" env:"BIND_ADDR" validate:"required"`
	ReadTimeout     time.Duration `yaml:"readTimeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" env:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idleTimeout" env:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env:"SHUTDOWN_TIMEOUT"`
}

type ModelSettings struct {
	Path      string `yaml:"path" env:"MODEL_PATH" validate:"required"`
	CacheSize int    `yaml:"cacheSize" env:"PREDICTION_CACHE_SIZE" validate:"min=0,max=1000000"`
}

type LogSettings struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `yaml:"format" env:"LOG_FORMAT" validate:"oneof=json console"`
	File   string `yaml:"file" env:"LOG_FILE"`
}

type MetricsSettings struct {
	Enabled bool `yaml:"enabled" env:"METRICS_ENABLED"`
}

type TrainSettings struct {
	DataPath string `yaml:"dataPath" env:"DATA_PATH" validate:"required"`
}

// Addr returns the host:port the HTTP server listens on.
func (s ServerSettings) Addr() string {
	return net.JoinHostPort(s.BindAddr, strconv.Itoa(s.Port))
}

// Defaults returns the settings used when neither a config file nor the
// environment overrides a value.
func Defaults() Settings {
	return Settings{
		Server: ServerSettings{
			Port:            common.DefaultPort,
			BindAddr:        common.DefaultBindAddr,
			ReadTimeout:     common.DefaultReadTimeoutSec * time.Second,
			WriteTimeout:    common.DefaultWriteTimeoutSec * time.Second,
			IdleTimeout:     common.DefaultIdleTimeoutSec * time.Second,
			ShutdownTimeout: common.DefaultShutdownSec * time.Second,
		},
		Model: ModelSettings{
			Path: common.DefaultModelPath,
		},
		Log: LogSettings{
			Level:  common.DefaultLogLevel,
			Format: common.DefaultLogFormat,
		},
		Metrics: MetricsSettings{
			Enabled: true,
		},
		Train: TrainSettings{
			DataPath: common.DefaultDataPath,
		},
	}
}

func Load() (Settings, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	settings := Defaults()

	if configPath := os.Getenv(common.EnvConfigFile); configPath != "" {
		if err := loadFromYAML(configPath, &settings); err != nil {
			return Settings{}, err
		}
	}

	if err := env.Parse(&settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func loadFromYAML(path string, settings *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

var validate = validator.New()

// validateSettings checks field constraints declared in struct tags, then the
// duration ranges which the tags cannot express.
func validateSettings(settings *Settings) error {
	if err := validate.Struct(settings); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q constraint (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"read timeout", settings.Server.ReadTimeout},
		{"write timeout", settings.Server.WriteTimeout},
		{"idle timeout", settings.Server.IdleTimeout},
		{"shutdown timeout", settings.Server.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.value < time.Second || d.value > 10*time.Minute {
			return fmt.Errorf("%s must be between 1s and 10m, got %v", d.name, d.value)
		}
	}

	return nil
}
