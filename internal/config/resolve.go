package config

import "fmt"

// Resolve returns the settings used for one request: the settings file
// merged over defaults, the keyring when the file holds no key, then
// environment overrides. secrets may be nil.
func Resolve(secrets SecretStore) (Settings, error) {
	cfg, err := Load()
	if err != nil {
		return cfg, err
	}
	if cfg.APIKey == "" && secrets != nil {
		key, err := secrets.Get()
		if err != nil {
			return cfg, fmt.Errorf("read keyring: %w", err)
		}
		cfg.APIKey = key
	}
	return FromEnv(cfg), nil
}
