// ABOUTME: Durable storage for the bearer credential
// ABOUTME: Stores the token under a fixed name in the XDG config directory

package session

import (
	"os"
	"path/filepath"
	"strings"
)

// tokenFileName is the fixed key the credential is persisted under
const tokenFileName = "token"

// CredStore persists the bearer credential between runs
type CredStore struct {
	configDir string
}

// NewCredStore creates a credential store rooted at the given config directory
func NewCredStore(configDir string) *CredStore {
	return &CredStore{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following the XDG convention
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "blog-cli")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "blog-cli")
}

// tokenFile returns the path to the persisted credential
func (cs *CredStore) tokenFile() string {
	return filepath.Join(cs.configDir, tokenFileName)
}

// Load reads the persisted credential. An absent file is not an error;
// it returns the empty string, meaning logged out.
func (cs *CredStore) Load() (string, error) {
	data, err := os.ReadFile(cs.tokenFile())
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the credential to disk, readable only by the owner
func (cs *CredStore) Save(token string) error {
	if err := os.MkdirAll(cs.configDir, 0700); err != nil {
		return err
	}
	return os.WriteFile(cs.tokenFile(), []byte(token), 0600)
}

// Clear removes the persisted credential. Removing an already-absent
// credential is not an error.
func (cs *CredStore) Clear() error {
	err := os.Remove(cs.tokenFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
