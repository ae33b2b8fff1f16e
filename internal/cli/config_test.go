package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Store.Backend != "file" || cfg.Cache.Backend != "file" {
		t.Errorf("default backends = %q/%q, want file/file", cfg.Store.Backend, cfg.Cache.Backend)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":9090"

[store]
backend = "mongo"

[store.mongo]
uri = "mongodb://localhost:27017"
database = "plans"

[cache]
backend = "redis"

[cache.redis]
addr = "localhost:6379"

[practice]
submit_url = "https://example.com/submit"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Store.Backend != "mongo" || cfg.Store.Mongo.Database != "plans" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Redis.Addr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Practice.SubmitURL != "https://example.com/submit" {
		t.Errorf("submit_url = %q", cfg.Practice.SubmitURL)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\naddr="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed config should fail to load")
	}
}
