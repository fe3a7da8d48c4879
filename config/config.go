package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Command-line flag names understood by Load.
const (
	FlagOwner     = "owner"
	FlagBalance   = "balance"
	FlagPrompt    = "prompt"
	FlagLogLevel  = "log-level"
	FlagLogPretty = "log-pretty"
)

var flagKeys = map[string]string{
	FlagOwner:     "account.owner",
	FlagBalance:   "account.initial_balance",
	FlagPrompt:    "session.prompt",
	FlagLogLevel:  "log.level",
	FlagLogPretty: "log.pretty",
}

// Config holds all application configuration.
type Config struct {
	Account AccountConfig `mapstructure:"account"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

type AccountConfig struct {
	Owner          string `mapstructure:"owner"`
	InitialBalance string `mapstructure:"initial_balance"` // decimal text; empty means 0.00
}

type SessionConfig struct {
	Prompt string `mapstructure:"prompt"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: LEDGER_.
// Nested keys use underscore: LEDGER_ACCOUNT_OWNER, LEDGER_LOG_LEVEL, etc.
// Flags in flags (may be nil) that were explicitly set override everything.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("account.owner", "User")
	v.SetDefault("account.initial_balance", "")
	v.SetDefault("session.prompt", "> ")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: LEDGER_ACCOUNT_OWNER -> account.owner
	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	// Read config file (not required; env vars and defaults can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
