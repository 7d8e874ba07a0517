package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	Key        string
	KeyFile    string
	AdminToken string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("RANCHCTL_SERVER", "http://localhost:8080"),
		Key:        os.Getenv("RANCHCTL_KEY"),
		KeyFile:    getEnvOrDefault("RANCHCTL_KEY_FILE", defaultKeyFile()),
		AdminToken: os.Getenv("RANCHCTL_ADMIN_TOKEN"),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadKey loads the player key from file if not already set
func (c *Config) LoadKey() error {
	if c.Key != "" {
		return nil
	}

	data, err := os.ReadFile(c.KeyFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No key file is fine
		}
		return err
	}

	c.Key = strings.TrimSpace(string(data))
	return nil
}

// SaveKey saves the player key to the key file
func (c *Config) SaveKey(key string) error {
	c.Key = key

	dir := filepath.Dir(c.KeyFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.KeyFile, []byte(key), 0600)
}

// RequireKey returns the configured player key or an error naming how to set one
func (c *Config) RequireKey() (string, error) {
	if c.Key == "" {
		return "", errors.New("no player key: pass --key, set RANCHCTL_KEY or run 'ranchctl player use <key>'")
	}
	return c.Key, nil
}

func defaultKeyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ranchctl/key"
	}
	return filepath.Join(home, ".ranchctl", "key")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
