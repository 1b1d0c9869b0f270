// Package config provides runtime configuration values for the service.
package config

import (
	"os"
)

// Config holds configuration knobs for the HTTP server and the two external
// collaborators.
type Config struct {
	Port string

	// CRMMode selects the catalog/submission backend: "mock" runs the
	// built-in simulator, "hubspot" talks to a real backend.
	CRMMode    string
	CRMBaseURL string
	CRMToken   string

	GeminiAPIKey string
	GeminiModel  string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		Port:         getenv("PORT", "3000"),
		CRMMode:      getenv("CRM_MODE", "mock"),
		CRMBaseURL:   getenv("CRM_BASE_URL", "https://api.hubapi.com"),
		CRMToken:     getenv("CRM_TOKEN", ""),
		GeminiAPIKey: getenv("GEMINI_API_KEY", ""),
		GeminiModel:  getenv("GEMINI_MODEL", "gemini-pro"),
	}
}
