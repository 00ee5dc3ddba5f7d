// Package config loads the optional `.codegraph.yaml` project config —
// ignore patterns, default impact depth, watcher timer defaults, and the
// model cache override — merged with environment variables and CLI
// flags, the way TaskWing's cmd/config.go layers viper over cobra
// (SetEnvPrefix/AutomaticEnv before the config file search, env vars
// winning over file defaults, file values winning over hardcoded
// defaults). Unlike TaskWing this package doesn't touch viper's global
// instance — each call to Load gets its own *viper.Viper so tests can
// run in parallel without cross-contaminating config state.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	fileName  = ".codegraph"
	envPrefix = "CODEGRAPH"
)

// Config is the full set of project-level defaults a .codegraph.yaml
// (or equivalent env vars) can override. Ignore and ModelCacheDir are
// loaded but not read by any other package: the indexer walk prunes only
// its built-in directory list, and the model cache location is resolved
// without consulting Config.
type Config struct {
	Ignore         []string `mapstructure:"ignore"`
	ImpactDepth    int      `mapstructure:"impact_depth"`
	Debounce       int      `mapstructure:"debounce_seconds"`
	RagDelay       int      `mapstructure:"rag_delay_seconds"`
	ModelCacheDir  string   `mapstructure:"model_cache_dir"`
	StoreFile      string   `mapstructure:"store_file"`
}

func defaults() Config {
	return Config{
		ImpactDepth: 3,
		Debounce:    2,
		RagDelay:    30,
		StoreFile:   ".codegraph.db",
	}
}

// Load searches root (then the process's working directory, per
// viper's AddConfigPath order) for a .codegraph.yaml file, merges in
// CODEGRAPH_-prefixed environment variables, and returns the resolved
// Config. A missing config file is not an error — defaults apply.
func Load(root string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(root)
	v.AddConfigPath(".")

	cfg := defaults()
	v.SetDefault("impact_depth", cfg.ImpactDepth)
	v.SetDefault("debounce_seconds", cfg.Debounce)
	v.SetDefault("rag_delay_seconds", cfg.RagDelay)
	v.SetDefault("store_file", cfg.StoreFile)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
