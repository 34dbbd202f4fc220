package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func env(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadWith(nil, env(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mwu.yaml")
	doc := "base_url: http://file:9000/\ntimeout: 20s\nfrontend: prompt\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadWith(
		[]string{"-log-level", "WARN"},
		env(map[string]string{EnvConfig: path, EnvTimeout: "5s", EnvLogFile: "/tmp/mwu.log"}),
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Config{
		BaseURL:  "http://file:9000",
		Timeout:  5 * time.Second,
		Frontend: "prompt",
		LogFile:  "/tmp/mwu.log",
		LogLevel: "warn",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	cfg, err = LoadWith([]string{"-config", path, "-base-url", "https://api.example.com"}, env(map[string]string{EnvBaseURL: "http://env:1"}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "https://api.example.com" || cfg.Timeout != 20*time.Second {
		t.Fatalf("flags should win over env and file: %+v", cfg)
	}
}

func TestValidation(t *testing.T) {
	cases := map[string][]string{
		"relative url": {"-base-url", "/api"},
		"ftp url":      {"-base-url", "ftp://example.com"},
		"zero timeout": {"-timeout", "0s"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadWith(args, env(nil)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	_, err := LoadWith(nil, env(map[string]string{EnvTimeout: "soon"}))
	if err == nil || !strings.Contains(err.Error(), EnvTimeout) {
		t.Fatalf("expected timeout parse error, got %v", err)
	}

	_, err = LoadWith([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, env(nil))
	if err == nil {
		t.Fatalf("expected missing file error")
	}
}
