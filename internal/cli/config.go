package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	UserID     string
	UserIDFile string
	Output     string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("HEARTGAME_SERVER", "http://localhost:8000"),
		UserID:     os.Getenv("HEARTGAME_USER_ID"),
		UserIDFile: getEnvOrDefault("HEARTGAME_USER_ID_FILE", defaultUserIDFile()),
		Output:     "text",
	}
}

// LoadUserID loads the user id from file if not already set
func (c *Config) LoadUserID() error {
	if c.UserID != "" {
		return nil
	}

	data, err := os.ReadFile(c.UserIDFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No saved user is fine
		}
		return err
	}

	c.UserID = strings.TrimSpace(string(data))
	return nil
}

// SaveUserID saves the user id to the user id file
func (c *Config) SaveUserID(userID string) error {
	c.UserID = userID

	dir := filepath.Dir(c.UserIDFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.UserIDFile, []byte(userID), 0600)
}

func defaultUserIDFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".heartgame/user_id"
	}
	return filepath.Join(home, ".heartgame", "user_id")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
