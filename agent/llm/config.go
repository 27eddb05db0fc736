package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/csds-labs/resolutions-pipeline/agent/contract"
	openrouterx "github.com/csds-labs/resolutions-pipeline/pkg/openrouter"
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

	ResolutionModel       string  `envconfig:"RESOLUTION_MODEL" split_words:"true"`
	OrderModel            string  `envconfig:"ORDER_MODEL" split_words:"true"`
	SummaryModel          string  `envconfig:"SUMMARY_MODEL" split_words:"true"`
	ResolutionTemperature float32 `envconfig:"RESOLUTION_TEMPERATURE" split_words:"true" default:"-1"`
	OrderTemperature      float32 `envconfig:"ORDER_TEMPERATURE" split_words:"true" default:"-1"`
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

// OpenRouterFor resolves per-agent model/temperature overrides against the
// defaults.
func (c Config) OpenRouterFor(agentType contractx.AgentType) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch agentType {
	case contractx.AgentTypeResolution:
		if v := strings.TrimSpace(c.ResolutionModel); v != "" {
			modelName = v
		}
		if c.ResolutionTemperature >= 0 {
			temp = c.ResolutionTemperature
		}
	case contractx.AgentTypeOrder:
		if v := strings.TrimSpace(c.OrderModel); v != "" {
			modelName = v
		}
		if c.OrderTemperature >= 0 {
			temp = c.OrderTemperature
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

// SummaryModelName is the model used by the summarization boundary.
func (c Config) SummaryModelName() string {
	if v := strings.TrimSpace(c.SummaryModel); v != "" {
		return v
	}
	return strings.TrimSpace(c.Model)
}

// OpenRouterClient returns the connection settings for the raw SDK client.
func (c Config) OpenRouterClient() openrouterx.Config {
	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              c.SummaryModelName(),
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        c.Temperature,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
