package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	stamped := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}
	tests := []struct {
		name string
		in   Info
		bi   *debug.BuildInfo
		want Info
	}{
		{
			name: "ldflags win",
			in:   Info{Version: "v1.0.0", Commit: "abc", Date: "today"},
			bi:   stamped,
			want: Info{Version: "v1.0.0", Commit: "abc", Date: "today"},
		},
		{
			name: "module stamps fill defaults",
			in:   Info{Version: "dev", Commit: "none", Date: "unknown"},
			bi:   stamped,
			want: Info{Version: "v0.3.1", Commit: "0123456789abcdef0123", Date: "2026-01-02T03:04:05Z"},
		},
		{
			name: "devel module keeps dev",
			in:   Info{Version: "dev", Commit: "none", Date: "unknown"},
			bi:   &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: Info{Version: "dev", Commit: "none", Date: "unknown"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fill(tt.in, tt.bi); got != tt.want {
				t.Errorf("fill() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCacheScope(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "v1.2.0", Commit: "abc"}, "v1.2.0:"},
		{Info{Version: "dev", Commit: "0123456789abcdef"}, "dev-0123456789ab:"},
		{Info{Version: "dev", Commit: "none"}, "dev:"},
	}
	for _, tt := range tests {
		if got := tt.info.CacheScope(); got != tt.want {
			t.Errorf("%+v.CacheScope() = %q, want %q", tt.info, got, tt.want)
		}
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version: ") || !strings.Contains(tmpl, "\ncommit: ") {
		t.Errorf("Template() = %q", tmpl)
	}
}
