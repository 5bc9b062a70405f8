package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Environment variables
const (
	EnvHome      = "ROADTRACK_HOME"
	EnvBackend   = "ROADTRACK_BACKEND"
	EnvExportDir = "ROADTRACK_EXPORT_DIR"
)

const (
	DefaultHome      = "~/.local/share/roadtrack"
	DefaultExportDir = "."
	ConfigFileName   = "config.json"
	LogFileName      = "roadtrack.log"
	DatabaseFileName = "roadtrack.db"
	storeDirName     = "store"
)

// Backend names a key-value storage implementation
type Backend string

const (
	BackendSQLite  Backend = "sqlite"
	BackendSQLite3 Backend = "sqlite3"
	BackendFile    Backend = "file"
	BackendMemory  Backend = "memory"
)

// Backends lists every supported backend
var Backends = []Backend{BackendSQLite, BackendSQLite3, BackendFile, BackendMemory}

// Valid reports whether b is a supported backend
func (b Backend) Valid() bool {
	for _, known := range Backends {
		if b == known {
			return true
		}
	}
	return false
}

var (
	errConfigInvalid  = errors.New("invalid config")
	errUnknownBackend = errors.New("unknown backend")
)

// Config holds the resolved runtime configuration
type Config struct {
	Home      string  `json:"-"`
	Backend   Backend `json:"backend,omitempty"`
	ExportDir string  `json:"export_dir,omitempty"` //nolint:tagliatelle // snake_case for config file
	Editor    string  `json:"editor,omitempty"`
	Verbose   bool    `json:"verbose,omitempty"`

	// Source is the config file that was loaded, empty when none
	Source string `json:"-"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Home:      ExpandHome(DefaultHome),
		Backend:   BackendSQLite,
		ExportDir: DefaultExportDir,
	}
}

// HomeDir returns the data directory from ROADTRACK_HOME,
// falling back to DefaultHome.
func HomeDir() string {
	if env := os.Getenv(EnvHome); env != "" {
		return ExpandHome(env)
	}
	return ExpandHome(DefaultHome)
}

// Load resolves configuration with the following precedence (highest wins):
// defaults, <home>/config.json, environment. CLI flags are applied by callers.
// getenv may be nil to use os.Getenv.
func Load(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Default()
	if home := getenv(EnvHome); home != "" {
		cfg.Home = ExpandHome(home)
	}

	path := filepath.Join(cfg.Home, ConfigFileName)
	fileCfg, loaded, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}
	if loaded {
		cfg = merge(cfg, fileCfg)
		cfg.Source = path
	}

	if backend := getenv(EnvBackend); backend != "" {
		cfg.Backend = Backend(backend)
	}
	if dir := getenv(EnvExportDir); dir != "" {
		cfg.ExportDir = dir
	}
	cfg.ExportDir = ExpandHome(cfg.ExportDir)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the resolved values
func (c Config) Validate() error {
	if !c.Backend.Valid() {
		names := make([]string, 0, len(Backends))
		for _, b := range Backends {
			names = append(names, string(b))
		}
		return fmt.Errorf("%w %q (want one of %s)", errUnknownBackend, c.Backend, strings.Join(names, ", "))
	}
	if c.Home == "" {
		return fmt.Errorf("%w: data directory is empty", errConfigInvalid)
	}
	return nil
}

// DatabasePath is the SQLite database location
func (c Config) DatabasePath() string {
	return filepath.Join(c.Home, DatabaseFileName)
}

// StoreDir is the directory used by the file backend
func (c Config) StoreDir() string {
	return filepath.Join(c.Home, storeDirName)
}

// LogPath is where the TUI writes its log
func (c Config) LogPath() string {
	return filepath.Join(c.Home, LogFileName)
}

func loadFile(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, false, nil
	}
	if err != nil {
		return Config{}, false, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}
	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.Backend != "" {
		base.Backend = overlay.Backend
	}
	if overlay.ExportDir != "" {
		base.ExportDir = overlay.ExportDir
	}
	if overlay.Editor != "" {
		base.Editor = overlay.Editor
	}
	if overlay.Verbose {
		base.Verbose = true
	}
	return base
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
