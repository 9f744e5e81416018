package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_API_KEY gates the whole suite: without a key the tests skip.
	APIKey     string `envconfig:"E2E_API_KEY"`
	APIURL     string `envconfig:"E2E_API_URL" default:"https://api.anthropic.com"`
	APIVersion string `envconfig:"E2E_API_VERSION" default:"2023-06-01"`
	Model      string `envconfig:"E2E_MODEL" default:"claude-3-5-haiku-latest"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
