package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pathviz/pkg/colour"
	"github.com/matzehuels/pathviz/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.LogLevel != want.LogLevel || cfg.Cache.Backend != want.Cache.Backend || cfg.Server.Addr != want.Server.Addr {
		t.Errorf("Load = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

[cache]
backend = "redis"
ttl = "1h"

[cache.redis]
addr = "redis:6379"
db = 2

[server]
addr = ":9000"

[render]
cell_size = 16

[palette]
start = "#000000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.Redis.Addr != "redis:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("TTL = %v, want 1h", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != ":9000" || cfg.Render.CellSize != 16 {
		t.Errorf("Server/Render = %+v / %+v", cfg.Server, cfg.Render)
	}
	// Unset keys keep their defaults.
	if cfg.Server.MaxBodyBytes != Default().Server.MaxBodyBytes {
		t.Errorf("MaxBodyBytes = %d", cfg.Server.MaxBodyBytes)
	}
	p, err := cfg.PaletteValue()
	if err != nil {
		t.Fatalf("PaletteValue: %v", err)
	}
	if !p.Start.Equal(colour.Black, 1e-9) {
		t.Errorf("palette start = %v", p.Start)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "log_level = \"debug\"\n")
	t.Setenv("PATHVIZ_LOG_LEVEL", "warn")
	t.Setenv("PATHVIZ_CACHE_BACKEND", "none")
	t.Setenv("PATHVIZ_CACHE_TTL", "90s")
	t.Setenv("PATHVIZ_REDIS_DB", "3")
	t.Setenv("PATHVIZ_LISTEN_ADDR", "127.0.0.1:7000")
	t.Setenv("PATHVIZ_CELL_SIZE", "8")
	t.Setenv("PATHVIZ_COLOR", "false")
	t.Setenv("PATHVIZ_PALETTE_END", "#FFFFFF")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want env override", cfg.LogLevel)
	}
	if cfg.Cache.Backend != BackendNone || cfg.Cache.TTL.Duration != 90*time.Second || cfg.Cache.Redis.DB != 3 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != "127.0.0.1:7000" || cfg.Render.CellSize != 8 || cfg.Render.Color {
		t.Errorf("Server/Render = %+v / %+v", cfg.Server, cfg.Render)
	}
	if cfg.Palette["end"] != "#FFFFFF" {
		t.Errorf("Palette = %v", cfg.Palette)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{"malformed toml", "log_level = ", nil},
		{"unknown key", "verbosity = 3\n", nil},
		{"bad level", "log_level = \"loud\"\n", nil},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", nil},
		{"bad ttl", "[cache]\nttl = \"soon\"\n", nil},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n", nil},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n[cache.redis]\naddr = \"\"\n", nil},
		{"bad palette", "[palette]\nstart = \"red\"\n", nil},
		{"bad env int", "", map[string]string{"PATHVIZ_CELL_SIZE": "big"}},
		{"bad env duration", "", map[string]string{"PATHVIZ_CACHE_TTL": "forever"}},
		{"bad env bool", "", map[string]string{"PATHVIZ_COLOR": "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultPath(); got != filepath.Join("/tmp/xdg", "pathviz", "config.toml") {
		t.Errorf("DefaultPath() = %q", got)
	}
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	if got := Default().Cache.Dir; got != filepath.Join("/tmp/cache", "pathviz") {
		t.Errorf("Cache.Dir = %q", got)
	}
}

func TestStringMasksPassword(t *testing.T) {
	cfg := Default()
	cfg.Cache.Redis.Password = "hunter2"
	s := cfg.String()
	if strings.Contains(s, "hunter2") {
		t.Error("password leaked")
	}
	if !strings.Contains(s, `ttl = "168h0m0s"`) {
		t.Errorf("String() =\n%s", s)
	}
	if cfg.Cache.Redis.Password != "hunter2" {
		t.Error("String() mutated the config")
	}
}
