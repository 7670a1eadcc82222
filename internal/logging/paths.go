package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.bjyadmin-installer/logs/).
// Falls back to the temp directory if the home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".bjyadmin-installer", "logs")
	}
	return filepath.Join(home, ".bjyadmin-installer", "logs")
}

// DefaultLogPath returns the default installer log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "installer.log")
}
