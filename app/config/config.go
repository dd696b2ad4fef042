package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    Server    `yaml:"server"`
	Log       Log       `yaml:"log"`
	OpenAI    OpenAI    `yaml:"openai"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Booking   Booking   `yaml:"booking"`
}

type Server struct {
	// Listen address
	Addr string `yaml:"addr" example:":3001"`
	// Allowed CORS origins
	CorsOrigins []string `yaml:"cors_origins" example:"https://brandastic.com"`
}

type OpenAI struct {
	// OpenAI base url
	BaseURL string `yaml:"base_url" example:"https://api.openai.com/v1"`
	// OpenAI token, leave empty to run in fallback mode
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX"`
	// OpenAI model
	Model string `yaml:"model" example:"gpt-3.5-turbo" validate:"required"`
	// Completion token limit
	MaxTokens int `yaml:"max_tokens" example:"400" validate:"gt=0"`
	// Sampling temperature
	Temperature float32 `yaml:"temperature" example:"0.7"`
}

type RateLimit struct {
	// Fixed window of the outer HTTP rate limiter, seconds
	WindowSeconds int `yaml:"window_seconds" example:"900" validate:"gt=0"`
	// Maximum requests per window per IP
	MaxRequests int `yaml:"max_requests" example:"50" validate:"gt=0"`
}

type Booking struct {
	// External calendar scheduling page
	URL string `yaml:"url" example:"https://calendar.google.com/calendar/u/0/appointments/schedules/abc" validate:"required,url"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Addr == "" {
		result.Server.Addr = ":3001"
	}
	if len(result.Server.CorsOrigins) == 0 {
		result.Server.CorsOrigins = []string{"http://localhost:5173"}
	}
	if result.OpenAI.BaseURL == "" {
		result.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if result.OpenAI.Model == "" {
		result.OpenAI.Model = "gpt-3.5-turbo"
	}
	if result.OpenAI.MaxTokens == 0 {
		result.OpenAI.MaxTokens = 400
	}
	if result.OpenAI.Temperature == 0 {
		result.OpenAI.Temperature = 0.7
	}
	if result.RateLimit.WindowSeconds == 0 {
		result.RateLimit.WindowSeconds = 900
	}
	if result.RateLimit.MaxRequests == 0 {
		result.RateLimit.MaxRequests = 50
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

// UpstreamConfigured reports whether the OpenAI token looks usable. A missing
// or placeholder token puts the service into fallback mode instead of failing
// startup.
func (c *Config) UpstreamConfigured() bool {
	token := c.OpenAI.Token

	if token == "" || token == "your_openai_api_key_here" || len(token) < 20 {
		return false
	}

	return strings.HasPrefix(token, "sk-")
}
