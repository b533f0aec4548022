package config

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "aiwriter"
	keyringUser    = "apiKey"
)

// SecretStore holds the API key outside the settings file.
type SecretStore interface {
	Get() (string, error)
	Set(secret string) error
	Delete() error
}

// Keyring stores the API key in the OS keyring.
type Keyring struct{}

func NewKeyring() *Keyring { return &Keyring{} }

// Get returns "" without error when no key is stored.
func (Keyring) Get() (string, error) {
	v, err := keyring.Get(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return v, err
}

func (Keyring) Set(secret string) error {
	if secret == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(keyringService, keyringUser, secret)
}

func (Keyring) Delete() error {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
