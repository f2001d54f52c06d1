// Package osutil provides abstractions for OS-level operations to enable testing.
package osutil

import (
	"os"
	"path/filepath"
)

// PathProvider abstracts the OS lookups used to place config, logs and
// downloaded screenshots.
type PathProvider interface {
	UserConfigDir() (string, error)
	UserHomeDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
}

// DefaultPathProvider uses real OS functions.
type DefaultPathProvider struct{}

// UserConfigDir returns the default root directory for user-specific configuration data.
func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// UserHomeDir returns the current user's home directory.
func (DefaultPathProvider) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Provider is the package-level path provider instance.
// In production, this is DefaultPathProvider. Tests can replace it.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider sets a custom provider (for testing).
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider resets to the default provider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}

// AppDir returns the per-user config directory for app, creating it when
// missing.
func AppDir(app string) (string, error) {
	base, err := Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(base, app)
	if err := Provider.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultDownloadDir returns ~/Downloads, or the working directory when the
// home directory cannot be determined.
func DefaultDownloadDir() string {
	home, err := Provider.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, "Downloads")
}
