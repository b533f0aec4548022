package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env from the working directory if present. Variables
// already set in the environment are kept.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(".env")
}

// FromEnv applies environment overrides on top of cfg.
func FromEnv(cfg Settings) Settings {
	if v := os.Getenv("AIWRITER_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("AIWRITER_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("AIWRITER_LANG"); v != "" {
		cfg.Language = v
	}
	return cfg
}
