// Package llm maps per-agent model settings onto OpenRouter chat models.
package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
	openrouterx "github.com/carpickhq/carpick-agent/pkg/openrouter"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	CoordinatorModel        string  `envconfig:"COORDINATOR_MODEL" split_words:"true"`
	NeedsAnalystModel       string  `envconfig:"NEEDS_ANALYST_MODEL" split_words:"true"`
	DataAnalystModel        string  `envconfig:"DATA_ANALYST_MODEL" split_words:"true"`
	CoordinatorTemperature  float32 `envconfig:"COORDINATOR_TEMPERATURE" split_words:"true" default:"-1"`
	NeedsAnalystTemperature float32 `envconfig:"NEEDS_ANALYST_TEMPERATURE" split_words:"true" default:"-1"`
	DataAnalystTemperature  float32 `envconfig:"DATA_ANALYST_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the effective model and temperature for one agent,
// falling back to the shared defaults.
func (c Config) OpenRouterFor(agent string) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch agent {
	case contractx.AgentCoordinator:
		if v := strings.TrimSpace(c.CoordinatorModel); v != "" {
			modelName = v
		}
		if c.CoordinatorTemperature >= 0 {
			temp = c.CoordinatorTemperature
		}
	case contractx.AgentNeedsAnalyst:
		if v := strings.TrimSpace(c.NeedsAnalystModel); v != "" {
			modelName = v
		}
		if c.NeedsAnalystTemperature >= 0 {
			temp = c.NeedsAnalystTemperature
		}
	case contractx.AgentDataAnalyst:
		if v := strings.TrimSpace(c.DataAnalystModel); v != "" {
			modelName = v
		}
		if c.DataAnalystTemperature >= 0 {
			temp = c.DataAnalystTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
