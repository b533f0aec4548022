package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/earlysvahn/aiwriter/internal/cli"
	"github.com/earlysvahn/aiwriter/internal/config"
	"github.com/earlysvahn/aiwriter/internal/tui"
)

// RunSettingsCommand handles the 'settings' subcommand
func RunSettingsCommand(args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	var reveal bool
	var useKeyring bool
	fs.BoolVar(&reveal, "reveal", false, "show the API key in clear text")
	fs.BoolVar(&useKeyring, "keyring", false, "store the API key in the OS keyring instead of the settings file")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}

	if len(positional) == 0 {
		if !cli.IsTerminal(os.Stdin) {
			return showSettings(reveal)
		}
		return editSettings()
	}

	switch positional[0] {
	case "show":
		return showSettings(reveal)
	case "path":
		fmt.Println(config.File())
		return nil
	case "set":
		if len(positional) != 3 {
			return fmt.Errorf("usage: aiwriter settings set [--keyring] KEY VALUE")
		}
		return setSetting(positional[1], positional[2], useKeyring, config.NewKeyring())
	default:
		return fmt.Errorf("unknown settings command: %s", positional[0])
	}
}

func showSettings(reveal bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	key := cfg.APIKey
	source := "settings file"
	if key == "" {
		source = "keyring"
		if key, err = config.NewKeyring().Get(); err != nil {
			source = fmt.Sprintf("keyring unavailable: %v", err)
		}
	}
	if !reveal {
		key = config.Masked(key)
	}
	effective := config.FromEnv(cfg)

	fmt.Printf("%-10s %s (%s)\n", "apiKey", key, source)
	fmt.Printf("%-10s %s\n", "endPoint", cfg.Endpoint)
	fmt.Printf("%-10s %s\n", "lang", cfg.Language)
	if effective.Endpoint != cfg.Endpoint || effective.Language != cfg.Language || effective.APIKey != cfg.APIKey {
		fmt.Println("(environment overrides are active)")
	}
	return nil
}

func setSetting(key, value string, useKeyring bool, secrets config.SecretStore) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if useKeyring {
		name, err := config.CanonicalKey(key)
		if err != nil {
			return err
		}
		if name != config.KeyAPIKey {
			return fmt.Errorf("--keyring only applies to %s", config.KeyAPIKey)
		}
		if err := secrets.Set(value); err != nil {
			return fmt.Errorf("keyring error: %w", err)
		}
		cfg.APIKey = ""
	} else if err := config.Set(&cfg, key, value); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	fmt.Fprintf(os.Stderr, "[aiwriter] saved %s\n", config.File())
	return nil
}

func editSettings() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := tui.RunSettings(cfg, config.Save, nil, nil); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
