package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Wallet Advisor Configuration

[advisor]
# Minimum feedback entries before acceptance rate is computed
min_feedback_samples = 5
# Trailing transaction window scanned for missed opportunities
history_window = 10
# Maximum missed opportunities attached to a recommendation
max_opportunities = 3
# Baseline monthly spend used for the overspend insight
usual_monthly_spend = 1500.0
# Merchants treated as recurring for context enrichment
recurring_merchants = ["Starbucks", "Whole Foods"]

[engine]
# Dollar value assigned to one reward point
point_value = 0.015
# Narrate recommendation explanations via LLM (requires OpenAI credentials)
llm_explanation = false
model = "gpt-4o-mini"

[database]
# SQLite database path (defaults to the config directory)
path = ""

[places]
# Nearby-place search radius in meters
radius_meters = 2000
# Use the built-in mock provider instead of Google Places
use_mock = false

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"
# Time format
time_format = "15:04:05"
`

const credentialsTemplate = `# Wallet Advisor Credentials
# Keep this file private (chmod 600).

[openai]
api_key = ""

[google]
places_api_key = ""
`

func createTemplateConfig(configDir string) error {
	return writeTemplate(configDir, "config.toml", configTemplate, 0644)
}

func createTemplateCredentials(configDir string) error {
	return writeTemplate(configDir, "credentials.toml", credentialsTemplate, 0600)
}

func writeTemplate(configDir, name, content string, perm os.FileMode) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("writing %s template: %w", name, err)
	}

	return nil
}
