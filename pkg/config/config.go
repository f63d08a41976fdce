// Package config loads pathviz settings from a TOML file and PATHVIZ_*
// environment variables.
//
// Settings are resolved in order, later sources winning:
//
//  1. built-in defaults ([Default])
//  2. $XDG_CONFIG_HOME/pathviz/config.toml (or ~/.config/pathviz/config.toml)
//  3. environment variables
//
// A missing config file is not an error.
//
//	log_level = "info"
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
//	[render]
//	cell_size = 32
//
//	[palette]
//	start = "#FC5C65"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pathviz/pkg/colour"
	"github.com/matzehuels/pathviz/pkg/errors"
)

const appName = "pathviz"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds every setting.
type Config struct {
	LogLevel string            `toml:"log_level"`
	Cache    CacheConfig       `toml:"cache"`
	Server   ServerConfig      `toml:"server"`
	Render   RenderConfig      `toml:"render"`
	Palette  map[string]string `toml:"palette"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	TTL     Duration    `toml:"ttl"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig is the Redis connection for the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// ServerConfig configures `pathviz serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	Timeout      Duration `toml:"timeout"`
}

// RenderConfig holds plotter defaults.
type RenderConfig struct {
	CellSize int  `toml:"cell_size"`
	Color    bool `toml:"color"`
}

// Duration is a time.Duration written as a string ("24h", "90s").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Cache: CacheConfig{
			Backend: BackendFile,
			Dir:     defaultCacheDir(),
			TTL:     Duration{7 * 24 * time.Hour},
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: appName + ":"},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
			Timeout:      Duration{30 * time.Second},
		},
		Render: RenderConfig{CellSize: 32, Color: true},
	}
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// defaultCacheDir returns the cache directory using XDG standard (~/.cache/pathviz/).
func defaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName)
}

// Load reads path (DefaultPath when empty), applies environment overrides
// and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, keys[0].String())
	}
	return nil
}

// envPrefix is prepended to every environment variable name.
const envPrefix = "PATHVIZ_"

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"LOG_LEVEL":      &c.LogLevel,
		"CACHE_BACKEND":  &c.Cache.Backend,
		"CACHE_DIR":      &c.Cache.Dir,
		"REDIS_ADDR":     &c.Cache.Redis.Addr,
		"REDIS_PASSWORD": &c.Cache.Redis.Password,
		"REDIS_PREFIX":   &c.Cache.Redis.Prefix,
		"LISTEN_ADDR":    &c.Server.Addr,
	}
	for name, dst := range str {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"REDIS_DB":  &c.Cache.Redis.DB,
		"CELL_SIZE": &c.Render.CellSize,
	}
	for name, dst := range ints {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", envPrefix, name)
			}
			*dst = n
		}
	}

	durs := map[string]*Duration{
		"CACHE_TTL":      &c.Cache.TTL,
		"SERVER_TIMEOUT": &c.Server.Timeout,
	}
	for name, dst := range durs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", envPrefix, name)
			}
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "COLOR"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sCOLOR", envPrefix)
		}
		c.Render.Color = b
	}

	for _, name := range colour.Names() {
		if v, ok := os.LookupEnv(envPrefix + "PALETTE_" + strings.ToUpper(name)); ok {
			if c.Palette == nil {
				c.Palette = map[string]string{}
			}
			c.Palette[name] = v
		}
	}
	return nil
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, strings.ToLower(c.LogLevel)) {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid log_level %q (must be one of: %s)", c.LogLevel, strings.Join(levels, ", "))
	}
	backends := []string{BackendFile, BackendRedis, BackendNone}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache backend %q (must be one of: %s)", c.Cache.Backend, strings.Join(backends, ", "))
	}
	if c.Cache.Backend == BackendRedis && c.Cache.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "redis cache backend needs cache.redis.addr")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.Render.CellSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render cell_size must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server max_body_bytes must be positive")
	}
	if _, err := c.PaletteValue(); err != nil {
		return err
	}
	return nil
}

// PaletteValue returns the default palette with the configured overrides.
func (c Config) PaletteValue() (colour.Palette, error) {
	p, err := colour.DefaultPalette().Override(c.Palette)
	if err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette")
	}
	return p, nil
}

// String renders the config as TOML, with the redis password masked.
func (c Config) String() string {
	if c.Cache.Redis.Password != "" {
		c.Cache.Redis.Password = "****"
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
