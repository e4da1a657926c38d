package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/forgekit/forge/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyScaffoldsDir = "scaffolds_dir"
	KeyDest         = "dest"
	KeyConcurrency  = "concurrency"
)

var descriptions = map[string]string{
	KeyScaffoldsDir: "directory holding user scaffold manifests",
	KeyDest:         "default destination root",
	KeyConcurrency:  "max sibling nodes materialized at once (0 = unlimited)",
}

// Dir returns the config directory. FORGE_HOME overrides ~/.forge.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes viper from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyScaffoldsDir, filepath.Join(Dir(), "scaffolds"))
	viper.SetDefault(KeyDest, ".")
	viper.SetDefault(KeyConcurrency, 0)

	// A missing config file is fine.
	_ = viper.ReadInConfig()
}

// Keys returns the known keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(descriptions))
	for k := range descriptions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Describe returns the help text for a known key.
func Describe(key string) (string, bool) {
	d, ok := descriptions[key]
	return d, ok
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// ScaffoldsDir returns the user scaffold directory.
func ScaffoldsDir() string { return viper.GetString(KeyScaffoldsDir) }

// Dest returns the default destination root.
func Dest() string { return viper.GetString(KeyDest) }

// Concurrency returns the per-level concurrency cap. Negative values are
// treated as unlimited.
func Concurrency() int {
	n := viper.GetInt(KeyConcurrency)
	if n < 0 {
		return 0
	}
	return n
}

// Set writes a known config key and saves the config file.
func Set(key, value string) error {
	if _, ok := descriptions[key]; !ok {
		return fmt.Errorf("unknown config key %q (known: %v)", key, Keys())
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
