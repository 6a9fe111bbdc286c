package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Embedding: EmbeddingConfig{
			Model:      "text-embedding-3-small",
			Dimensions: 1536,
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port

		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingEmbeddingModel(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Model = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding model")
	}
}

func TestValidate_InvalidDimensions(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Dimensions = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero dimensions")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("ReadTimeoutSec = %d, want 10", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != "redis" {
		t.Errorf("Driver = %q, want redis", cfg.Database.Driver)
	}
	if cfg.Embedding.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Embedding.Provider)
	}
	if cfg.Embedding.BatchSize != 64 {
		t.Errorf("BatchSize = %d, want 64", cfg.Embedding.BatchSize)
	}
	if cfg.Generation.TimeoutSec != 30 {
		t.Errorf("Generation.TimeoutSec = %d, want 30", cfg.Generation.TimeoutSec)
	}
	if cfg.Scraper.TimeoutSec != 10 {
		t.Errorf("Scraper.TimeoutSec = %d, want 10", cfg.Scraper.TimeoutSec)
	}
	if cfg.Catalog.Collection != "assessments" {
		t.Errorf("Collection = %q, want assessments", cfg.Catalog.Collection)
	}
	if cfg.Index.HNSWM != 32 || cfg.Index.HNSWEFConstruct != 400 {
		t.Errorf("HNSW defaults = %d/%d, want 32/400", cfg.Index.HNSWM, cfg.Index.HNSWEFConstruct)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 5},
		Database: DatabaseConfig{Driver: "valkey"},
		Catalog:  CatalogConfig{Collection: "trials"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 5 {
		t.Errorf("ReadTimeoutSec = %d, want 5", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != "valkey" {
		t.Errorf("Driver = %q, want valkey", cfg.Database.Driver)
	}
	if cfg.Catalog.Collection != "trials" {
		t.Errorf("Collection = %q, want trials", cfg.Catalog.Collection)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("ASSESSREC_TEST_VAR", "secret")

	got := string(expandEnvVars([]byte("key: ${ASSESSREC_TEST_VAR}")))
	if got != "key: secret" {
		t.Errorf("got %q", got)
	}
}

func TestExpandEnvVars_Default(t *testing.T) {
	t.Setenv("ASSESSREC_TEST_UNSET", "")

	got := string(expandEnvVars([]byte("addr: ${ASSESSREC_TEST_UNSET:-localhost:6379}")))
	if got != "addr: localhost:6379" {
		t.Errorf("got %q", got)
	}
}

func TestExpandEnvVars_SetOverridesDefault(t *testing.T) {
	t.Setenv("ASSESSREC_TEST_SET", "redis:6380")

	got := string(expandEnvVars([]byte("addr: ${ASSESSREC_TEST_SET:-localhost:6379}")))
	if got != "addr: redis:6380" {
		t.Errorf("got %q", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if env := GetEnv(); env != "local" {
		t.Errorf("GetEnv() = %q, want local", env)
	}

	t.Setenv("ENV", "prod")
	if env := GetEnv(); env != "prod" {
		t.Errorf("GetEnv() = %q, want prod", env)
	}
}
