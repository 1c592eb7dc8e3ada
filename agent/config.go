package agent

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Mode is the agent's operating mode.
type Mode string

const (
	ModeChat       Mode = "chat"
	ModeAnalysis   Mode = "analysis"
	ModeTask       Mode = "task"
	ModeExtraction Mode = "extraction"
	ModeToolUse    Mode = "tool_use"
	ModeReact      Mode = "react"
)

var validModes = []Mode{ModeChat, ModeAnalysis, ModeTask, ModeExtraction, ModeToolUse, ModeReact}

// Config holds per-agent settings.
type Config struct {
	Mode            Mode `env:"AGENTRY_AGENT_MODE" envDefault:"chat"`
	MaxHistory      int  `env:"AGENTRY_MAX_HISTORY" envDefault:"20"`
	MaxToolRounds   int  `env:"AGENTRY_MAX_TOOL_ROUNDS" envDefault:"200"`
	ToolOutputLimit int  `env:"AGENTRY_TOOL_OUTPUT_LIMIT" envDefault:"30000"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Mode:            ModeChat,
		MaxHistory:      DefaultMaxHistory,
		MaxToolRounds:   200,
		ToolOutputLimit: 30000,
	}
}

// Validate checks the configuration, rejecting unknown modes.
func (c Config) Validate() error {
	for _, m := range validModes {
		if c.Mode == m {
			return nil
		}
	}
	return &ConfigurationError{
		Message: fmt.Sprintf("mode %q not supported, must be one of %v", c.Mode, validModes),
	}
}

// ConfigFromEnv builds a Config from AGENTRY_* environment variables and
// validates it.
func ConfigFromEnv() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, &ConfigurationError{Message: "invalid environment: " + err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
