package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	// DefaultCredentialsPath is where the samples look for the INI file.
	DefaultCredentialsPath = ".config/config.ini"
	// DefaultSection holds api_key and api_secret.
	DefaultSection = "alpaca"

	KeyAPIKey    = "api_key"
	KeyAPISecret = "api_secret"
)

// Credentials is the key pair every client is built from.
type Credentials struct {
	APIKey    string
	APISecret string
}

// LoadCredentials reads api_key and api_secret from section of the INI file
// at path. A missing file, section or key is an error.
func LoadCredentials(path, section string) (*Credentials, error) {
	if section == "" {
		section = DefaultSection
	}
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file %s: %w", path, err)
	}
	sec, err := file.GetSection(section)
	if err != nil {
		return nil, fmt.Errorf("credentials file %s: no section %q", path, section)
	}

	get := func(name string) (string, error) {
		if !sec.HasKey(name) {
			return "", fmt.Errorf("credentials file %s: no option %q in section %q", path, name, section)
		}
		return strings.TrimSpace(sec.Key(name).String()), nil
	}

	key, err := get(KeyAPIKey)
	if err != nil {
		return nil, err
	}
	secret, err := get(KeyAPISecret)
	if err != nil {
		return nil, err
	}
	return &Credentials{APIKey: key, APISecret: secret}, nil
}

// WriteCredentials writes creds to section of a new INI file at path.
func WriteCredentials(path, section string, creds Credentials) error {
	if section == "" {
		section = DefaultSection
	}
	file := ini.Empty()
	sec, err := file.NewSection(section)
	if err != nil {
		return err
	}
	if _, err := sec.NewKey(KeyAPIKey, creds.APIKey); err != nil {
		return err
	}
	if _, err := sec.NewKey(KeyAPISecret, creds.APISecret); err != nil {
		return err
	}
	return file.SaveTo(path)
}

// CredentialStore is the subset of secretstore.Store the loader needs.
type CredentialStore interface {
	GetString(key string) (string, bool, error)
	SetString(key, val string) error
}

func storeKey(prefix, name string) string {
	if prefix == "" {
		prefix = DefaultSection + "/"
	}
	return prefix + name
}

// LoadCredentialsFromStore reads the key pair saved by SaveCredentialsToStore.
func LoadCredentialsFromStore(store CredentialStore, prefix string) (*Credentials, error) {
	get := func(name string) (string, error) {
		v, found, err := store.GetString(storeKey(prefix, name))
		if err != nil {
			return "", err
		}
		if !found {
			return "", fmt.Errorf("secret store: %s not found", storeKey(prefix, name))
		}
		return v, nil
	}
	key, err := get(KeyAPIKey)
	if err != nil {
		return nil, err
	}
	secret, err := get(KeyAPISecret)
	if err != nil {
		return nil, err
	}
	return &Credentials{APIKey: key, APISecret: secret}, nil
}

// SaveCredentialsToStore writes both keys under prefix.
func SaveCredentialsToStore(store CredentialStore, prefix string, creds Credentials) error {
	if err := store.SetString(storeKey(prefix, KeyAPIKey), creds.APIKey); err != nil {
		return err
	}
	return store.SetString(storeKey(prefix, KeyAPISecret), creds.APISecret)
}

// credentialsFromEnv returns the APCA_* pair when both are set.
func credentialsFromEnv() (*Credentials, bool) {
	key := strings.TrimSpace(os.Getenv("APCA_API_KEY_ID"))
	secret := strings.TrimSpace(os.Getenv("APCA_API_SECRET_KEY"))
	if key == "" || secret == "" {
		return nil, false
	}
	return &Credentials{APIKey: key, APISecret: secret}, true
}

func (c Credentials) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%s is empty", KeyAPIKey)
	}
	if c.APISecret == "" {
		return fmt.Errorf("%s is empty", KeyAPISecret)
	}
	return nil
}
