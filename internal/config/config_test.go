package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_hydratesScraperSection(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, "scraper.yaml", `
source_url: https://rates.example/table
timeout: 3s
bar_window: 4
pairs:
  USD_BRL:
    from: USD
    to: BRL
`)
	mainPath := writeConfigFile(t, dir, "cotacao.yaml", `
Name: cotacao-test
Host: 127.0.0.1
Port: 8899
Auth:
  AccessSecret: ${COTACAO_TEST_SECRET}
  AccessExpire: 60
Scraper:
  File: scraper.yaml
`)
	t.Setenv("COTACAO_TEST_SECRET", "s3cret")
	t.Setenv("NO_DOTENV", "1")

	cfg, err := Load(mainPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Auth.AccessSecret; got != "s3cret" {
		t.Fatalf("Auth.AccessSecret not expanded, got %q", got)
	}
	if cfg.Scraper.Value == nil {
		t.Fatal("Scraper section not hydrated")
	}
	if got := cfg.Scraper.Value.SourceURL; got != "https://rates.example/table" {
		t.Fatalf("Scraper.SourceURL got %q", got)
	}
	if got := cfg.Scraper.Value.BarWindow; got != 4 {
		t.Fatalf("Scraper.BarWindow got %d", got)
	}
	if got := cfg.Scraper.Value.Timeout.String(); got != "3s" {
		t.Fatalf("Scraper.Timeout got %s", got)
	}
	if cfg.Sync.Window != 10 || cfg.Sync.QuotesPolicy != PolicyUpsert {
		t.Fatalf("Sync defaults not applied: window=%d policy=%q", cfg.Sync.Window, cfg.Sync.QuotesPolicy)
	}
	if cfg.TTL.Short <= 0 || cfg.TTL.Medium <= 0 || cfg.TTL.Long <= 0 {
		t.Fatalf("TTL defaults not applied: %+v", cfg.TTL)
	}
	if !cfg.IsTestEnv() {
		t.Fatalf("Env default should be test, got %q", cfg.Env)
	}
}

func TestValidate_rejectsUnknownEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Env = "staging"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestValidate_requiresAccessSecret(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Auth.AccessSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty access secret")
	}
}

func TestValidate_rejectsUnknownQuotesPolicy(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Sync.QuotesPolicy = "merge"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown quotes policy")
	}
}

func TestValidate_rejectsNonPositiveWindow(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Sync.Window = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive window")
	}
}

func TestValidate_rejectsNonPositiveTTL(t *testing.T) {
	cfg := validBaseConfig()
	cfg.TTL.Medium = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive TTL")
	}
}

func validBaseConfig() *Config {
	cfg := &Config{Env: "test"}
	cfg.Auth.AccessSecret = "secret"
	cfg.Auth.AccessExpire = 60
	cfg.Sync = SyncConf{Window: 10, QuotesPolicy: PolicyUpsert, SyntheticFallback: true}
	cfg.TTL = CacheTTL{Short: 10, Medium: 60, Long: 300}
	return cfg
}
