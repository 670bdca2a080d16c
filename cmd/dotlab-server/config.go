package main

import (
	"flag"
	"fmt"
	"strconv"
)

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Addr       string
	Sim        string
	ConfigFile string
	Seed       int64
	TPS        int
	FPS        int
	LogLevel   string
}

// configResolver resolves one option from a flag, then an environment
// variable, then a default.
type configResolver struct {
	flagName    string
	envVarName  string
	defaultVal  string
	description string
	setter      func(*ServerConfig, string) error
}

func positiveInt(dst *int) func(*ServerConfig, string) error {
	return func(_ *ServerConfig, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("want a positive integer, got %q", v)
		}
		*dst = n
		return nil
	}
}

func resolvers(cfg *ServerConfig) []configResolver {
	return []configResolver{
		{
			flagName:    "addr",
			envVarName:  "DOTLAB_ADDR",
			defaultVal:  ":8080",
			description: "HTTP listen address",
			setter:      func(c *ServerConfig, v string) error { c.Addr = v; return nil },
		},
		{
			flagName:    "sim",
			envVarName:  "DOTLAB_SIM",
			defaultVal:  "scatter",
			description: "scene to run",
			setter:      func(c *ServerConfig, v string) error { c.Sim = v; return nil },
		},
		{
			flagName:    "config",
			envVarName:  "DOTLAB_CONFIG",
			defaultVal:  "",
			description: "YAML tunables file",
			setter:      func(c *ServerConfig, v string) error { c.ConfigFile = v; return nil },
		},
		{
			flagName:    "seed",
			envVarName:  "DOTLAB_SEED",
			defaultVal:  "0",
			description: "seed for the initial reset (0 uses the config seed)",
			setter: func(c *ServerConfig, v string) error {
				n, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					return fmt.Errorf("want an integer, got %q", v)
				}
				c.Seed = n
				return nil
			},
		},
		{
			flagName:    "tps",
			envVarName:  "DOTLAB_TPS",
			defaultVal:  "60",
			description: "simulation ticks per second",
			setter:      positiveInt(&cfg.TPS),
		},
		{
			flagName:    "fps",
			envVarName:  "DOTLAB_FPS",
			defaultVal:  "20",
			description: "frames per second pushed to websocket clients",
			setter:      positiveInt(&cfg.FPS),
		},
		{
			flagName:    "log",
			envVarName:  "DOTLAB_LOG",
			defaultVal:  "INFO",
			description: "loggo level specification",
			setter:      func(c *ServerConfig, v string) error { c.LogLevel = v; return nil },
		},
	}
}

// loadServerConfig parses args into fs and resolves every option.
func loadServerConfig(fs *flag.FlagSet, args []string, getenv func(string) string) (ServerConfig, error) {
	var cfg ServerConfig
	rs := resolvers(&cfg)
	flagVars := make(map[string]*string, len(rs))
	for _, r := range rs {
		flagVars[r.flagName] = fs.String(r.flagName, "", fmt.Sprintf("%s (env %s, default %q)", r.description, r.envVarName, r.defaultVal))
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	for _, r := range rs {
		value := r.defaultVal
		if v := *flagVars[r.flagName]; v != "" {
			value = v
		} else if v := getenv(r.envVarName); v != "" {
			value = v
		}
		if err := r.setter(&cfg, value); err != nil {
			return cfg, fmt.Errorf("-%s: %w", r.flagName, err)
		}
	}
	return cfg, nil
}
