package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/earlysvahn/aiwriter/internal/utils"
)

func EnsureDir() error { return os.MkdirAll(Dir(), 0o755) }

// Load reads the settings file and merges it over Defaults. A missing file
// yields the defaults. Keys present in the file win, even when empty.
func Load() (Settings, error) {
	cfg := Defaults()
	b, err := os.ReadFile(File())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parse %s: %w", File(), err)
	}
	return cfg, nil
}

// Save writes the settings atomically.
func Save(cfg Settings) error {
	if err := EnsureDir(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(File(), b, 0o600)
}

const (
	KeyAPIKey   = "apiKey"
	KeyEndpoint = "endPoint"
	KeyLanguage = "lang"
)

// CanonicalKey maps a setting name or one of its aliases to its JSON key.
func CanonicalKey(key string) (string, error) {
	switch strings.ToLower(key) {
	case "apikey", "api-key", "key":
		return KeyAPIKey, nil
	case "endpoint", "end-point", "url":
		return KeyEndpoint, nil
	case "lang", "language":
		return KeyLanguage, nil
	}
	return "", fmt.Errorf("unknown setting: %s (must be 'apiKey', 'endPoint', or 'lang')", key)
}

// Set assigns one setting by name.
func Set(cfg *Settings, key, value string) error {
	name, err := CanonicalKey(key)
	if err != nil {
		return err
	}
	switch name {
	case KeyAPIKey:
		cfg.APIKey = value
	case KeyEndpoint:
		value = strings.TrimSpace(value)
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid endpoint %q: must be an absolute URL", value)
		}
		cfg.Endpoint = value
	case KeyLanguage:
		value = strings.TrimSpace(value)
		if value == "" {
			return fmt.Errorf("language must not be empty")
		}
		cfg.Language = value
	}
	return nil
}

// Masked returns the key with all but the last four characters hidden.
func Masked(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
