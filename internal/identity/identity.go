// ABOUTME: Anonymous device identity for scoping scraps to one user.
// ABOUTME: A random UUID created on first use and persisted under the XDG config dir.

package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const fileName = "identity"

// Dir returns the identity directory path.
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "scraps")
}

// Path returns the path of the persisted identity file.
func Path() string {
	return filepath.Join(Dir(), fileName)
}

// LoadOrCreate returns the device's anonymous user identifier, creating
// and persisting one on first use. The identifier is opaque to the store;
// it only scopes queries, inserts, and subscriptions.
func LoadOrCreate() (string, error) {
	return loadOrCreateAt(Path())
}

func loadOrCreateAt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		id := strings.TrimSpace(string(data))
		if _, parseErr := uuid.Parse(id); parseErr == nil {
			return id, nil
		}
		// Corrupt identity file: mint a fresh one below.
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read identity: %w", err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0600); err != nil {
		return "", fmt.Errorf("persist identity: %w", err)
	}
	return id, nil
}

// Reset removes the persisted identifier. The next LoadOrCreate mints a
// new one, which means previously saved scraps are no longer visible.
func Reset() error {
	err := os.Remove(Path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
