// Package config loads roomwatch settings from the process environment, an
// optional .env file and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/amishk599/roomwatch/internal/model"
)

// Config is the root configuration for a roomwatch run.
type Config struct {
	TargetURL string
	Mode      model.Mode
	LogLevel  string

	LLM          LLMConfig
	Fetch        FetchConfig
	State        StateConfig
	Notification NotificationConfig
}

// LLMConfig selects and authenticates the completion provider.
type LLMConfig struct {
	Provider string // "anthropic" or "openai"
	APIKey   string
	Model    string
	BaseURL  string
}

// FetchConfig controls how the page is retrieved and reduced to text.
type FetchConfig struct {
	Mode        string // "http" or "browser"
	ExtractMode string // "markup" or "readability"
	ChromeBin   string // browser mode only; empty uses the default lookup
}

// StateConfig controls where the last report is kept.
type StateConfig struct {
	Backend string // "file", "sqlite" or "nop"
	Path    string
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type            string // "pushover", "slack", "telegram" or "log"
	PushoverToken   string
	PushoverUser    string
	SlackWebhookURL string
	TelegramToken   string
	TelegramChatID  int64
}

const (
	defaultStateFile = "state.json"
	defaultModel     = "claude-3-5-sonnet-20241022"
	defaultOpenAI    = "gpt-4o-mini"

	anthropicBaseURL = "https://api.anthropic.com"
	openAIBaseURL    = "https://api.openai.com/v1"
)

// rawConfig is the YAML shape. Every field is optional; environment
// variables take precedence.
type rawConfig struct {
	TargetURL string `yaml:"target_url"`
	Mode      string `yaml:"mode"`
	LogLevel  string `yaml:"log_level"`
	LLM       struct {
		Provider string `yaml:"provider"`
		APIKey   string `yaml:"api_key"`
		Model    string `yaml:"model"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"llm"`
	Fetch struct {
		Mode        string `yaml:"mode"`
		ExtractMode string `yaml:"extract_mode"`
		ChromeBin   string `yaml:"chrome_bin"`
	} `yaml:"fetch"`
	State struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
	} `yaml:"state"`
	Notification struct {
		Type            string `yaml:"type"`
		PushoverToken   string `yaml:"pushover_token"`
		PushoverUser    string `yaml:"pushover_user"`
		SlackWebhookURL string `yaml:"slack_webhook_url"`
		TelegramToken   string `yaml:"telegram_token"`
		TelegramChatID  int64  `yaml:"telegram_chat_id"`
	} `yaml:"notification"`
}

// Load builds a Config. A .env file in the working directory is applied
// first (existing variables win), then the YAML file at path if path is not
// empty, then environment overrides. The result is validated before return;
// validation failures wrap model.ErrConfig.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	var raw rawConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read config: %v", model.ErrConfig, err)
		}
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("%w: parse config: %v", model.ErrConfig, err)
		}
	}
	return fromRaw(raw, os.Getenv)
}

// fromRaw merges file values with env lookups, applies defaults and validates.
func fromRaw(raw rawConfig, getenv func(string) string) (*Config, error) {
	pick := func(fileVal string, keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				return v
			}
		}
		return fileVal
	}

	mode, err := model.ParseMode(strings.ToLower(pick(raw.Mode, "REPORT_MODE")))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrConfig, err)
	}

	cfg := &Config{
		TargetURL: pick(raw.TargetURL, "TARGET_URL"),
		Mode:      mode,
		LogLevel:  strings.ToLower(pick(raw.LogLevel, "LOG_LEVEL")),
		LLM: LLMConfig{
			Provider: strings.ToLower(pick(raw.LLM.Provider, "LLM_PROVIDER")),
			APIKey:   pick(raw.LLM.APIKey, "CLAUDE_API_KEY", "LLM_API_KEY"),
			Model:    pick(raw.LLM.Model, "LLM_MODEL"),
			BaseURL:  pick(raw.LLM.BaseURL, "LLM_BASE_URL"),
		},
		Fetch: FetchConfig{
			Mode:        strings.ToLower(pick(raw.Fetch.Mode, "FETCH_MODE")),
			ExtractMode: strings.ToLower(pick(raw.Fetch.ExtractMode, "EXTRACT_MODE")),
			ChromeBin:   pick(raw.Fetch.ChromeBin, "CHROME_BIN"),
		},
		State: StateConfig{
			Backend: strings.ToLower(pick(raw.State.Backend, "STATE_BACKEND")),
			Path:    pick(raw.State.Path, "STATE_FILE"),
		},
		Notification: NotificationConfig{
			Type:            strings.ToLower(pick(raw.Notification.Type, "NOTIFIER")),
			PushoverToken:   pick(raw.Notification.PushoverToken, "PUSHOVER_TOKEN"),
			PushoverUser:    pick(raw.Notification.PushoverUser, "PUSHOVER_USER"),
			SlackWebhookURL: pick(raw.Notification.SlackWebhookURL, "SLACK_WEBHOOK_URL"),
			TelegramToken:   pick(raw.Notification.TelegramToken, "TELEGRAM_BOT_TOKEN"),
			TelegramChatID:  raw.Notification.TelegramChatID,
		},
	}

	if v := getenv("TELEGRAM_CHAT_ID"); v != "" {
		var id int64
		if _, err := fmt.Sscan(v, &id); err != nil {
			return nil, fmt.Errorf("%w: invalid TELEGRAM_CHAT_ID %q", model.ErrConfig, v)
		}
		cfg.Notification.TelegramChatID = id
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrConfig, err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "anthropic"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModel
		if cfg.LLM.Provider == "openai" {
			cfg.LLM.Model = defaultOpenAI
		}
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = anthropicBaseURL
		if cfg.LLM.Provider == "openai" {
			cfg.LLM.BaseURL = openAIBaseURL
		}
	}
	if cfg.Fetch.Mode == "" {
		cfg.Fetch.Mode = "http"
	}
	if cfg.Fetch.ExtractMode == "" {
		cfg.Fetch.ExtractMode = "markup"
	}
	if cfg.State.Backend == "" {
		cfg.State.Backend = "file"
	}
	if cfg.State.Path == "" {
		cfg.State.Path = defaultStateFile
	}
	if cfg.Notification.Type == "" {
		cfg.Notification.Type = "pushover"
	}
}

func validate(cfg *Config) error {
	var missing []string
	if cfg.LLM.APIKey == "" {
		missing = append(missing, "CLAUDE_API_KEY")
	}
	if cfg.Notification.Type == "pushover" {
		if cfg.Notification.PushoverToken == "" {
			missing = append(missing, "PUSHOVER_TOKEN")
		}
		if cfg.Notification.PushoverUser == "" {
			missing = append(missing, "PUSHOVER_USER")
		}
	}
	if cfg.TargetURL == "" {
		missing = append(missing, "TARGET_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	switch cfg.LLM.Provider {
	case "anthropic", "openai":
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLM.Provider)
	}
	switch cfg.Fetch.Mode {
	case "http", "browser":
	default:
		return fmt.Errorf("unsupported FETCH_MODE %q", cfg.Fetch.Mode)
	}
	switch cfg.Fetch.ExtractMode {
	case "markup", "readability":
	default:
		return fmt.Errorf("unsupported EXTRACT_MODE %q", cfg.Fetch.ExtractMode)
	}
	switch cfg.State.Backend {
	case "file", "sqlite", "nop":
	default:
		return fmt.Errorf("unsupported STATE_BACKEND %q", cfg.State.Backend)
	}

	switch cfg.Notification.Type {
	case "pushover", "log":
	case "slack":
		if !strings.HasPrefix(cfg.Notification.SlackWebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("SLACK_WEBHOOK_URL must start with https://hooks.slack.com/")
		}
	case "telegram":
		if cfg.Notification.TelegramToken == "" || cfg.Notification.TelegramChatID == 0 {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required when NOTIFIER is \"telegram\"")
		}
	default:
		return fmt.Errorf("unsupported NOTIFIER %q", cfg.Notification.Type)
	}
	return nil
}
