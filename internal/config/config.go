package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/arcanaland/scrydeck/internal/deck"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	// DefaultSleeve is the regular card back
	DefaultSleeve         = "http://3.219.233.7/images/backs/0aeebaf5-8c7d-4636-9e82-8c27447861f7.jpg"
	DefaultAPIBaseURL     = "https://api.scryfall.com"
	DefaultRequestTimeout = "30s"
)

// Config represents the application configuration
type Config struct {
	DefaultDeck    string `toml:"default_deck"`
	Sleeve         string `toml:"sleeve"`
	APIBaseURL     string `toml:"api_base_url"`
	RequestTimeout string `toml:"request_timeout"`
}

// Defaults returns the configuration written on first use
func Defaults() *Config {
	return &Config{
		Sleeve:         DefaultSleeve,
		APIBaseURL:     DefaultAPIBaseURL,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// Timeout returns the request timeout, falling back to the default when unset or invalid
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultRequestTimeout)
	}
	return d
}

// fillDefaults sets keys missing from an older config file
func (c *Config) fillDefaults() {
	defaults := Defaults()
	if c.Sleeve == "" {
		c.Sleeve = defaults.Sleeve
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaults.APIBaseURL
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = defaults.RequestTimeout
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDeckLibraryPath returns the path to the deck library
func GetDeckLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "scrydeck", "decks")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "scrydeck", "config.toml")
}

// LoadConfig loads the config file
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.fillDefaults()

	return &config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Defaults()
	if err := writeConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func writeConfig(config *Config) error {
	configPath := GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// ListDecks returns the names of the decklists in the deck library
func ListDecks() ([]string, error) {
	entries, err := os.ReadDir(GetDeckLibraryPath())
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != deck.Extension {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), deck.Extension))
	}
	return names, nil
}

// GetDeckPath returns the path to a decklist, either in the deck library or a relative path
func GetDeckPath(deckName string) (string, error) {
	libraryPath := GetDeckLibraryPath()

	for _, candidate := range []string{deckName, deckName + deck.Extension} {
		deckPath := filepath.Join(libraryPath, candidate)
		if info, err := os.Stat(deckPath); err == nil && !info.IsDir() {
			return deckPath, nil
		}
	}

	// If not found in the library, treat as a relative path
	if _, err := os.Stat(deckName); err == nil {
		return deckName, nil
	}

	if names, err := ListDecks(); err == nil {
		if ranks := fuzzy.RankFindFold(deckName, names); len(ranks) > 0 {
			best := ranks[0]
			for _, r := range ranks[1:] {
				if r.Distance < best.Distance {
					best = r
				}
			}
			return "", fmt.Errorf("deck not found: %s (did you mean %q?)", deckName, best.Target)
		}
	}

	return "", fmt.Errorf("deck not found: %s", deckName)
}

// SetDefaultDeck sets the default deck in the config
func SetDefaultDeck(deckName string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.DefaultDeck = deckName
	return writeConfig(config)
}
