package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/flashdeck/internal/card"
)

const (
	DefaultDecksDir    = "data/decks/"
	DefaultCatalogFile = "index.json"
)

// Config represents the application configuration
type Config struct {
	SiteURL      string `toml:"site_url"`
	DecksDir     string `toml:"decks_dir"`
	CatalogFile  string `toml:"catalog_file"`
	DefaultDeck  string `toml:"default_deck"`
	StateFile    string `toml:"state_file"`
	DefaultImage Image  `toml:"default_image"`
}

// Image overrides the illustration shown on cards without their own image.
type Image struct {
	Src string `toml:"src"`
	Alt string `toml:"alt"`
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// GetXDGStateHome returns XDG_STATE_HOME or default path
func GetXDGStateHome() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, fallback)
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "flashdeck", "config.toml")
}

// GetCacheDir returns the directory for generated artefacts
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "flashdeck")
}

// LoadConfig loads the config file, creating a default one on first use
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.applyDefaults()

	return &config, nil
}

// Save writes the config back to its file
func (c *Config) Save() error {
	configPath := GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error opening config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

func createDefaultConfig() (*Config, error) {
	config := &Config{}
	config.applyDefaults()

	if err := config.Save(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.DecksDir == "" {
		c.DecksDir = DefaultDecksDir
	}
	if c.CatalogFile == "" {
		c.CatalogFile = DefaultCatalogFile
	}
	if c.StateFile == "" {
		c.StateFile = filepath.Join(GetXDGStateHome(), "flashdeck", "state.toml")
	}
	if c.DefaultImage.Src == "" {
		c.DefaultImage.Src = card.DefaultImage.Src
	}
	if c.DefaultImage.Alt == "" {
		c.DefaultImage.Alt = card.DefaultImage.Alt
	}
}

// SiteRoot parses the site URL. A bare filesystem path is accepted and turned
// into a file:// URL. The result always ends with a slash so relative
// references resolve inside the site.
func SiteRoot(site string) (*url.URL, error) {
	site = strings.TrimSpace(site)
	if site == "" {
		return nil, fmt.Errorf("no site configured: set site_url in %s or pass --site", GetConfigFilePath())
	}

	u, err := url.Parse(site)
	if err != nil || u.Scheme == "" || (u.Scheme != "file" && u.Host == "") {
		abs, absErr := filepath.Abs(site)
		if absErr != nil {
			return nil, fmt.Errorf("invalid site %q: %w", site, absErr)
		}
		u = &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// CatalogURL returns the location of the deck catalog below root.
func (c *Config) CatalogURL(root *url.URL) (*url.URL, error) {
	dir := c.DecksDir
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	ref, err := url.Parse(dir + c.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog location: %w", err)
	}
	return root.ResolveReference(ref), nil
}
