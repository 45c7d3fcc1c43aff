package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// ErrMissingCredential means GEMINI_API_KEY was not set.
var ErrMissingCredential = errors.New("GEMINI_API_KEY is not set")

// Server is the proxy configuration, read from the environment and an
// optional .env file.
type Server struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	APIKey      string `mapstructure:"GEMINI_API_KEY"`
	Provider    string `mapstructure:"AI_PROVIDER"`
	Model       string `mapstructure:"AI_MODEL"`
	BaseURL     string `mapstructure:"AI_BASE_URL"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
}

func (s Server) Addr() string {
	return ":" + s.Port
}

func (s Server) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// LoadServer reads dir/.env if present, with environment variables
// taking precedence.
func LoadServer(dir string) (Server, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	defaults := map[string]any{
		"ENVIRONMENT":    "development",
		"PORT":           "3000",
		"GEMINI_API_KEY": "",
		"AI_PROVIDER":    "googleai",
		"AI_MODEL":       "",
		"AI_BASE_URL":    "",
		"LOG_LEVEL":      "info",
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Server{}, err
		}
	}

	var cfg Server
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return cfg, ErrMissingCredential
	}
	return cfg, nil
}
