package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level bot configuration.
type Config struct {
	Discord  DiscordConfig `yaml:"discord"`
	Timezone string        `yaml:"timezone"`
	Store    StoreConfig   `yaml:"store"`
	Server   ServerConfig  `yaml:"server"`
	Logging  LoggingConfig `yaml:"logging"`
}

// DiscordConfig holds the application credentials and the guild the bot
// manages events for.
type DiscordConfig struct {
	Token          string `yaml:"token"`
	ApplicationID  int64  `yaml:"application_id"`
	GuildID        int64  `yaml:"guild_id"`
	PublicKey      string `yaml:"public_key"`
	VoiceChannelID int64  `yaml:"voice_channel_id"`
}

// StoreConfig holds event snapshot persistence settings.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds HTTP listener settings for the interactions endpoint.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// defaults applies sane defaults to zero-valued fields.
func (c *Config) defaults() {
	if c.Timezone == "" {
		c.Timezone = "America/New_York"
	}
	if c.Store.Path == "" {
		c.Store.Path = "data/events.json"
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// validate checks required fields and value constraints.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Discord.VoiceChannelID == 0 {
		return fmt.Errorf("discord.voice_channel_id is required")
	}
	if c.Discord.GuildID == 0 {
		return fmt.Errorf("discord.guild_id is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q is not a valid IANA zone: %w", c.Timezone, err)
	}
	return nil
}

// expandEnv replaces ${VAR} references in secret-bearing fields with
// environment variable values. This allows keeping secrets out of YAML.
func (c *Config) expandEnv() {
	c.Discord.Token = os.ExpandEnv(c.Discord.Token)
	c.Discord.PublicKey = os.ExpandEnv(c.Discord.PublicKey)
}

// Location resolves the configured reference timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load reads a YAML config file, applies defaults, expands env vars, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.defaults()
	cfg.expandEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
