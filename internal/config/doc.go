// Package config manages user-level settings stored at ~/.forge/config.yaml.
// Values resolve in viper's order: explicit Set, FORGE_* environment
// variables, the config file, then the defaults registered by Load.
package config
