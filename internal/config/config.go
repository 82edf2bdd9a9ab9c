package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"

	"codeforge/internal/backend"
)

const (
	defaultMaxTokens   = 4000
	defaultTemperature = 0.3
	defaultRunTimeout  = 2 * time.Minute
)

// Settings is the plain configuration surface. The `token` key is the
// fallback credential slot; secure storage always wins over it.
type Settings struct {
	BaseURL     string
	Token       string
	MaxTokens   int
	Temperature float64
	Interpreter string
	RunTimeout  time.Duration
}

// Load reads config.yaml from the data dir (then the working directory) and
// layers CODEFORGE_* environment variables on top.
func Load(dataDir string) (*Settings, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dataDir != "" {
		v.AddConfigPath(dataDir)
	}
	v.AddConfigPath(".")
	v.SetEnvPrefix("codeforge")
	v.AutomaticEnv()

	v.SetDefault("base_url", backend.DefaultBaseURL)
	v.SetDefault("token", "")
	v.SetDefault("max_tokens", defaultMaxTokens)
	v.SetDefault("temperature", defaultTemperature)
	v.SetDefault("interpreter", "")
	v.SetDefault("run_timeout", defaultRunTimeout.String())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	settings := &Settings{
		BaseURL:     v.GetString("base_url"),
		Token:       v.GetString("token"),
		MaxTokens:   v.GetInt("max_tokens"),
		Temperature: v.GetFloat64("temperature"),
		Interpreter: v.GetString("interpreter"),
		RunTimeout:  v.GetDuration("run_timeout"),
	}
	backfill(settings)
	return settings, nil
}

func backfill(settings *Settings) {
	if settings.BaseURL == "" {
		settings.BaseURL = backend.DefaultBaseURL
	}
	if settings.MaxTokens <= 0 {
		settings.MaxTokens = defaultMaxTokens
	}
	if settings.Temperature < 0 || settings.Temperature > 2 {
		settings.Temperature = defaultTemperature
	}
	if settings.RunTimeout <= 0 {
		settings.RunTimeout = defaultRunTimeout
	}
}
