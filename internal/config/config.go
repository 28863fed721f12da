// Package config loads application settings and graph files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "automata.yaml"

// Environment variables that override file values.
const (
	EnvLogLevel  = "AUTOMATA_LOG_LEVEL"
	EnvLogFormat = "AUTOMATA_LOG_FORMAT"
	EnvInterval  = "AUTOMATA_INTERVAL"
	EnvAddr      = "AUTOMATA_ADDR"
	EnvRedisAddr = "AUTOMATA_REDIS_ADDR"
	EnvStoreDir  = "AUTOMATA_STORE_DIR"
	EnvStoreKey  = "AUTOMATA_STORE_KEY"
)

// Config holds the application settings.
type Config struct {
	LogLevel  string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string        `mapstructure:"log_format" yaml:"log_format"`
	Interval  time.Duration `mapstructure:"interval" yaml:"interval"`
	Frontier  string        `mapstructure:"frontier" yaml:"frontier"`
	HTTP      HTTPConfig    `mapstructure:"http" yaml:"http"`
	Redis     RedisConfig   `mapstructure:"redis" yaml:"redis"`
	Store     StoreConfig   `mapstructure:"store" yaml:"store"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// RedisConfig configures the redis session store. An empty Addr selects the memory store.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// StoreConfig selects local session persistence and at-rest encryption.
// Dir is used when no Redis address is set; an empty Dir keeps sessions in memory.
// Key and FallbackKeys are base64 AES-256 keys; an empty Key stores sessions in clear.
type StoreConfig struct {
	Dir          string   `mapstructure:"dir" yaml:"dir"`
	Key          string   `mapstructure:"key" yaml:"key"`
	FallbackKeys []string `mapstructure:"fallback_keys" yaml:"fallback_keys"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Interval:  time.Second,
		Frontier:  "lifo",
		HTTP:      HTTPConfig{Addr: ":8080"},
		Redis:     RedisConfig{Prefix: "automata:session:"},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := Parse(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg, keeping fields the document does not set.
// Durations accept Go syntax ("500ms") or plain seconds.
func Parse(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}
	if raw == nil {
		return nil
	}
	return decode(raw, cfg)
}

func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncType(secondsHook),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// secondsHook reads bare numbers as seconds when the target is a duration.
func secondsHook(_, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	}
	return data, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := lookup(EnvInterval); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvInterval, err)
		}
		cfg.Interval = d
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.HTTP.Addr = v
	}
	if v, ok := lookup(EnvRedisAddr); ok {
		cfg.Redis.Addr = v
	}
	if v, ok := lookup(EnvStoreDir); ok {
		cfg.Store.Dir = v
	}
	if v, ok := lookup(EnvStoreKey); ok {
		cfg.Store.Key = v
	}
	return nil
}
