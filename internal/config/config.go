// Package config provides configuration management for the wallet advisor application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Advisor     AdvisorConfig `mapstructure:"advisor"`
	Engine      EngineConfig  `mapstructure:"engine"`
	Database    DatabaseConfig `mapstructure:"database"`
	Places      PlacesConfig  `mapstructure:"places"`
	UI          UIConfig      `mapstructure:"ui"`
	Credentials Credentials   `mapstructure:"-"` // Loaded separately
}

// AdvisorConfig holds recommendation pipeline policy constants.
type AdvisorConfig struct {
	MinFeedbackSamples int      `mapstructure:"min_feedback_samples"`
	HistoryWindow      int      `mapstructure:"history_window"`
	MaxOpportunities   int      `mapstructure:"max_opportunities"`
	UsualMonthlySpend  float64  `mapstructure:"usual_monthly_spend"`
	RecurringMerchants []string `mapstructure:"recurring_merchants"`
}

// EngineConfig holds card-scoring engine configuration.
type EngineConfig struct {
	PointValue     float64 `mapstructure:"point_value"`     // dollar value per point
	LLMExplanation bool    `mapstructure:"llm_explanation"` // narrate explanations via LLM
	Model          string  `mapstructure:"model"`
}

// DatabaseConfig holds record store configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// PlacesConfig holds place-lookup configuration.
type PlacesConfig struct {
	RadiusMeters int  `mapstructure:"radius_meters"`
	UseMock      bool `mapstructure:"use_mock"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

// Credentials holds API credentials.
type Credentials struct {
	OpenAI OpenAICredentials `mapstructure:"openai"`
	Google GoogleCredentials `mapstructure:"google"`
}

// OpenAICredentials holds OpenAI API credentials.
type OpenAICredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// GoogleCredentials holds Google Places API credentials.
type GoogleCredentials struct {
	PlacesAPIKey string `mapstructure:"places_api_key"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/wallet-advisor"
	}
	return filepath.Join(home, ".config", "wallet-advisor")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	// Load main config
	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// Load credentials
	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	// An empty database path in the config file means "use the default".
	if cfg.Database.Path == "" {
		cfg.Database.Path = filepath.Join(DefaultConfigDir(), "advisor.db")
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setAdvisorDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if terr := createTemplateConfig(configDir); terr != nil {
				return terr
			}
			// Template written; proceed with defaults.
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func setAdvisorDefaults(v *viper.Viper) {
	v.SetDefault("advisor.min_feedback_samples", 5)
	v.SetDefault("advisor.history_window", 10)
	v.SetDefault("advisor.max_opportunities", 3)
	v.SetDefault("advisor.usual_monthly_spend", 1500.0)
	v.SetDefault("advisor.recurring_merchants", []string{"Starbucks", "Whole Foods"})
	v.SetDefault("engine.point_value", 0.015)
	v.SetDefault("engine.llm_explanation", false)
	v.SetDefault("engine.model", "gpt-4o-mini")
	v.SetDefault("database.path", filepath.Join(DefaultConfigDir(), "advisor.db"))
	v.SetDefault("places.radius_meters", 2000)
	v.SetDefault("places.use_mock", false)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")
	v.SetDefault("ui.time_format", "15:04:05")
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Credentials.OpenAI.APIKey = v
	}
	if v := os.Getenv("GOOGLE_PLACES_API_KEY"); v != "" {
		cfg.Credentials.Google.PlacesAPIKey = v
	}
	if v := os.Getenv("WALLET_ADVISOR_DB"); v != "" {
		cfg.Database.Path = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Advisor.MinFeedbackSamples < 1 {
		return fmt.Errorf("min_feedback_samples must be at least 1")
	}
	if c.Advisor.HistoryWindow < 1 {
		return fmt.Errorf("history_window must be at least 1")
	}
	if c.Advisor.MaxOpportunities < 0 {
		return fmt.Errorf("max_opportunities must be non-negative")
	}
	if c.Advisor.UsualMonthlySpend < 0 {
		return fmt.Errorf("usual_monthly_spend must be non-negative")
	}
	if c.Engine.PointValue < 0 {
		return fmt.Errorf("point_value must be non-negative")
	}
	if c.Places.RadiusMeters <= 0 {
		return fmt.Errorf("radius_meters must be positive")
	}
	return nil
}
