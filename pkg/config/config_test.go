package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/efxvdb/pkg/cache"
	"github.com/matzehuels/efxvdb/pkg/cipher"
	"github.com/matzehuels/efxvdb/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}
	if cfg.Library != "efxphysicallib" || cfg.ScopeType != "$scopeinfo" {
		t.Errorf("library/scope = %q/%q", cfg.Library, cfg.ScopeType)
	}
	if p, _ := cfg.Policy(); p != cipher.FirstWins {
		t.Errorf("Policy() = %v", p)
	}
	if ttl, _ := cfg.TTL(); ttl != cache.TTLContainer {
		t.Errorf("TTL() = %v", ttl)
	}
	if cfg.Cache.Backend != cache.BackendFile || cfg.Export.Jobs != 4 {
		t.Errorf("cache/jobs = %q/%d", cfg.Cache.Backend, cfg.Export.Jobs)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
library = "mylib"

[cipher]
duplicates = "last"

[export]
seed = 42
mult_bypass = true
jobs = 2

[cache]
backend = "none"
ttl = "1h"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.Library != "mylib" {
		t.Errorf("Library = %q", cfg.Library)
	}
	if cfg.ScopeType != "$scopeinfo" {
		t.Errorf("ScopeType default lost: %q", cfg.ScopeType)
	}
	if p, _ := cfg.Policy(); p != cipher.LastWins {
		t.Errorf("Policy() = %v", p)
	}
	if cfg.Export.Seed != 42 || !cfg.Export.MultBypass || cfg.Export.Jobs != 2 {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if ttl, _ := cfg.TTL(); ttl != time.Hour {
		t.Errorf("TTL() = %v", ttl)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "[cache]\nbackend = \"file\"\n")
	t.Setenv("EFXVDB_CACHE_BACKEND", "none")
	t.Setenv("EFXVDB_EXPORT_SEED", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != cache.BackendNone {
		t.Errorf("Backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Export.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Export.Seed)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"bad policy", "[cipher]\nduplicates = \"middle\"\n", errors.ErrCodeInvalidConfig},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidConfig},
		{"bad ttl", "[cache]\nttl = \"soon\"\n", errors.ErrCodeInvalidConfig},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n", errors.ErrCodeInvalidConfig},
		{"negative jobs", "[export]\njobs = -1\n", errors.ErrCodeInvalidConfig},
		{"bad toml", "library = \n", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("err = %v, want FILE_NOT_FOUND", err)
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Export.Seed = 99
	cfg.Cipher.Duplicates = "strict"
	cfg.Cache.Namespace = "proj"

	path := filepath.Join(t.TempDir(), "sub", FileName)
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[export]") {
		t.Errorf("saved config has no [export] table:\n%s", data)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Export.Seed != 99 || got.Cipher.Duplicates != "strict" || got.Cache.Namespace != "proj" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestKeyer(t *testing.T) {
	cfg := Default()
	opts := cache.ContainerKeyOpts{Library: cfg.Library}

	plain := cfg.Keyer().ContainerKey("h", opts)
	if !strings.HasPrefix(plain, "container:") {
		t.Errorf("default key = %q", plain)
	}

	cfg.Cache.Namespace = "team"
	scoped := cfg.Keyer().ContainerKey("h", opts)
	if scoped != "team:"+plain {
		t.Errorf("scoped key = %q, want team:%s", scoped, plain)
	}
	if cfg.CacheOptions().Redis.Prefix != "efxvdb:" {
		t.Errorf("redis prefix = %q", cfg.CacheOptions().Redis.Prefix)
	}
}
