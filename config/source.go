package config

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Environment variables consulted for the home directory, in order.
const (
	EnvHome        = "HOME"
	EnvUserProfile = "USERPROFILE"
)

// Location of the descriptor file relative to the home directory.
const (
	CursorDir  = ".cursor"
	ConfigFile = "mcp-config.json"
)

// Source is the capability the loader reads the environment and disk through.
type Source interface {
	LookupEnv(key string) (string, bool)
	ReadFile(name string) ([]byte, error)
}

// OSSource reads the real process environment and filesystem.
type OSSource struct{}

// LookupEnv implements Source.
func (OSSource) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

// ReadFile implements Source.
func (OSSource) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

// MapSource serves environment variables and files from memory.
type MapSource struct {
	Env   map[string]string
	Files map[string][]byte
}

// LookupEnv implements Source.
func (m MapSource) LookupEnv(key string) (string, bool) {
	v, ok := m.Env[key]
	return v, ok
}

// ReadFile implements Source. Unknown names fail with fs.ErrNotExist.
func (m MapSource) ReadFile(name string) ([]byte, error) {
	data, ok := m.Files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// HomeDir returns HOME, falling back to USERPROFILE. Empty values count as unset.
func HomeDir(src Source) (string, bool) {
	for _, key := range []string{EnvHome, EnvUserProfile} {
		if v, ok := src.LookupEnv(key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// DefaultPath returns the descriptor path under the given home directory.
func DefaultPath(home string) string {
	return filepath.Join(home, CursorDir, ConfigFile)
}
