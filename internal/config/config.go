// Package config loads holotask settings from defaults, an optional YAML
// file and HOLOTASK_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/holotask/internal/llm"
	"github.com/spf13/viper"
)

// EnvConfigFile names the environment variable that points at a config file.
const EnvConfigFile = "HOLOTASK_CONFIG"

// Config is the complete runtime configuration.
type Config struct {
	DBPath string    `mapstructure:"db_path"`
	Log    LogConfig `mapstructure:"log"`
	LLM    LLMConfig `mapstructure:"llm"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives log output; empty means stderr.
	File string `mapstructure:"file"`
}

// LLMConfig mirrors llm.LLMConfig in its on-disk form.
type LLMConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Provider   string `mapstructure:"provider"`
	Endpoint   string `mapstructure:"endpoint"`
	Model      string `mapstructure:"model"`
	APIKey     string `mapstructure:"api_key"`
	TimeoutMs  int    `mapstructure:"timeout_ms"`
	MaxRetries int    `mapstructure:"max_retries"`
	LogCalls   bool   `mapstructure:"log_calls"`
}

// Dir returns ~/.holotask, or .holotask when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".holotask"
	}
	return filepath.Join(home, ".holotask")
}

// DefaultFile is the config file read when HOLOTASK_CONFIG is unset.
func DefaultFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	d := llm.DefaultConfig()
	return &Config{
		DBPath: filepath.Join(Dir(), "holotask.db"),
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		LLM: LLMConfig{
			Enabled:    d.Enabled,
			Provider:   string(d.Provider),
			TimeoutMs:  d.TimeoutMs,
			MaxRetries: d.MaxRetries,
			LogCalls:   d.LogCalls,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("llm.enabled", d.LLM.Enabled)
	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.endpoint", d.LLM.Endpoint)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.timeout_ms", d.LLM.TimeoutMs)
	v.SetDefault("llm.max_retries", d.LLM.MaxRetries)
	v.SetDefault("llm.log_calls", d.LLM.LogCalls)
}

// Load reads configuration. file overrides HOLOTASK_CONFIG; an explicitly
// named file must exist, the default one may be absent.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HOLOTASK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.api_key", "HOLOTASK_LLM_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, err
	}

	if file == "" {
		file = os.Getenv(EnvConfigFile)
	}
	if file == "" {
		if _, err := os.Stat(DefaultFile()); err == nil {
			file = DefaultFile()
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// LLMSettings converts the file form into an llm.LLMConfig, filling the
// provider's default endpoint and model.
func (c *Config) LLMSettings() llm.LLMConfig {
	out := llm.DefaultConfig()
	provider, err := llm.ParseProvider(c.LLM.Provider)
	if err != nil {
		provider = llm.ProviderOllama
	}
	out.Enabled = c.LLM.Enabled
	out.LogCalls = c.LLM.LogCalls
	out.Provider = provider
	out.Endpoint = strings.TrimRight(c.LLM.Endpoint, "/")
	if out.Endpoint == "" {
		out.Endpoint = llm.DefaultEndpoint(provider)
	}
	out.Model = c.LLM.Model
	if out.Model == "" {
		out.Model = llm.DefaultModel(provider)
	}
	out.APIKey = c.LLM.APIKey
	out.TimeoutMs = c.LLM.TimeoutMs
	out.MaxRetries = c.LLM.MaxRetries
	return out
}
