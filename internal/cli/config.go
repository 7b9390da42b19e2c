package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	IdentityURL string
	SessionURL  string
	GameURL     string
	UserID      string
	UserFile    string
	Output      string
	Verbose     bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		IdentityURL: getEnvOrDefault("WORDDUEL_IDENTITY_URL", "http://localhost:4001"),
		SessionURL:  getEnvOrDefault("WORDDUEL_SESSION_URL", "http://localhost:4002"),
		GameURL:     getEnvOrDefault("WORDDUEL_GAME_URL", "http://localhost:4003"),
		UserID:      os.Getenv("WORDDUEL_USER_ID"),
		UserFile:    getEnvOrDefault("WORDDUEL_USER_FILE", defaultUserFile()),
		Output:      "text",
		Verbose:     false,
	}
}

// LoadUser loads the logged-in user id from file if not already set
func (c *Config) LoadUser() error {
	if c.UserID != "" {
		return nil
	}

	data, err := os.ReadFile(c.UserFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not logged in yet
		}
		return err
	}

	c.UserID = strings.TrimSpace(string(data))
	return nil
}

// SaveUser saves the logged-in user id to the user file
func (c *Config) SaveUser(userID string) error {
	c.UserID = userID

	dir := filepath.Dir(c.UserFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.UserFile, []byte(userID), 0600)
}

func defaultUserFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wordduel/user"
	}
	return filepath.Join(home, ".wordduel", "user")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
