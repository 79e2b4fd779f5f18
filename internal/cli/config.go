package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences loaded from the TOML config file.
// Every field has a working default so the file is entirely optional.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Serve  ServeConfig  `toml:"serve"`
}

// RenderConfig holds default rendering preferences.
type RenderConfig struct {
	Format     string  `toml:"format"`
	Scale      float64 `toml:"scale"`
	Background string  `toml:"background"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Enabled   bool   `toml:"enabled"`
	Backend   string `toml:"backend"` // "file" or "redis"
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
}

// StoreConfig selects the session store backend used by serve.
type StoreConfig struct {
	Backend  string `toml:"backend"` // "file" or "mongo"
	Dir      string `toml:"dir"`
	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db"`
}

// ServeConfig holds HTTP server preferences.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// defaultConfig returns the configuration used when no config file exists.
func defaultConfig() Config {
	return Config{
		Render: RenderConfig{Format: "svg"},
		Cache:  CacheConfig{Enabled: true, Backend: "file"},
		Store:  StoreConfig{Backend: "file", MongoURI: "mongodb://localhost:27017", MongoDB: appName},
		Serve:  ServeConfig{Addr: ":8080"},
	}
}

// loadConfig reads the config file if present and overlays it on the
// defaults. A missing file is not an error; a malformed file is.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// configPath returns the config file path using XDG standard
// (~/.config/algoviz/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// dataDir returns the session store directory using XDG standard
// (~/.local/share/algoviz/sessions/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "sessions"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "sessions"), nil
}
