// Package config loads the YAML configuration for the digest CLI.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the digest CLI configuration.
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Mailchimp   MailchimpConfig   `yaml:"mailchimp"`
	Regions     []string          `yaml:"regions"`
	Output      string            `yaml:"output"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
}

// LLMConfig points at an OpenAI-protocol chat endpoint.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// SearchConfig configures the grounding search provider.
type SearchConfig struct {
	Tavily TavilyConfig `yaml:"tavily"`
}

// TavilyConfig holds the Tavily credentials.
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// MailchimpConfig holds the list signup endpoint.
type MailchimpConfig struct {
	ActionURL string `yaml:"action_url"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig bounds the request rate against the model endpoint.
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// DBConfig is the briefing-cache database connection.
type DBConfig struct {
	Driver string `yaml:"driver"`
	Source string `yaml:"source"`
}

// Load reads and parses the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
