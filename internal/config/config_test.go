package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Retrieval: RetrievalConfig{
			DefaultTopK: 5,
			MaxTopK:     100,
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestValidate_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 65536} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d: expected error", port)
		}
	}
}

func TestValidate_DefaultTopKExceedsMax(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.DefaultTopK = 50
	cfg.Retrieval.MaxTopK = 10
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	want := "retrieval.default_top_k (50) exceeds retrieval.max_top_k (10)"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestValidate_AdapterWithoutName(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.Adapters = []AdapterConfig{{TagBoost: 0.2}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unnamed adapter")
	}
}

func TestValidate_DuplicateAdapterName(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.Adapters = []AdapterConfig{
		{Name: "baseline_bow"},
		{Name: "baseline_bow", TagBoost: 0.2},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	want := `duplicate adapter name "baseline_bow"`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestValidate_NegativeBoost(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.Adapters = []AdapterConfig{{Name: "bad", TagBoost: -0.1}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative tag boost")
	}

	cfg = validConfig()
	cfg.Retrieval.Adapters = []AdapterConfig{{Name: "bad", SourceBoost: -0.5}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative source boost")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("read timeout = %d, want 10", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("write timeout = %d, want 10", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("shutdown timeout = %d, want 10", cfg.HTTP.ShutdownSec)
	}
	if cfg.Retrieval.DefaultTopK != 5 {
		t.Errorf("default top k = %d, want 5", cfg.Retrieval.DefaultTopK)
	}
	if cfg.Retrieval.MaxTopK != 100 {
		t.Errorf("max top k = %d, want 100", cfg.Retrieval.MaxTopK)
	}
	if cfg.Benchmark.HistoryLimit != 20 {
		t.Errorf("history limit = %d, want 20", cfg.Benchmark.HistoryLimit)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := Config{
		Retrieval: RetrievalConfig{DefaultTopK: 3, MaxTopK: 10},
		Benchmark: BenchmarkConfig{HistoryLimit: 50},
	}
	cfg.ApplyDefaults()

	if cfg.Retrieval.DefaultTopK != 3 || cfg.Retrieval.MaxTopK != 10 {
		t.Errorf("top k = %d/%d, want 3/10", cfg.Retrieval.DefaultTopK, cfg.Retrieval.MaxTopK)
	}
	if cfg.Benchmark.HistoryLimit != 50 {
		t.Errorf("history limit = %d, want 50", cfg.Benchmark.HistoryLimit)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("LEXIDEX_TEST_VAR", "8181")
	defer os.Unsetenv("LEXIDEX_TEST_VAR")

	got := string(expandEnvVars([]byte("port: ${LEXIDEX_TEST_VAR}")))
	if got != "port: 8181" {
		t.Errorf("expanded = %q", got)
	}
}

func TestExpandEnvVars_Default(t *testing.T) {
	os.Unsetenv("LEXIDEX_UNSET_VAR")

	got := string(expandEnvVars([]byte("port: ${LEXIDEX_UNSET_VAR:-9090}")))
	if got != "port: 9090" {
		t.Errorf("expanded = %q", got)
	}
}

func TestExpandEnvVars_SetOverridesDefault(t *testing.T) {
	os.Setenv("LEXIDEX_TEST_VAR", "real")
	defer os.Unsetenv("LEXIDEX_TEST_VAR")

	got := string(expandEnvVars([]byte("key: ${LEXIDEX_TEST_VAR:-fallback}")))
	if got != "key: real" {
		t.Errorf("expanded = %q", got)
	}
}

func TestGetEnv(t *testing.T) {
	os.Unsetenv("ENV")
	if env := GetEnv(); env != "local" {
		t.Errorf("GetEnv() = %q, want local", env)
	}

	os.Setenv("ENV", "prod")
	defer os.Unsetenv("ENV")
	if env := GetEnv(); env != "prod" {
		t.Errorf("GetEnv() = %q, want prod", env)
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.HTTP.Port)
	}
	if len(cfg.Retrieval.Adapters) != 3 {
		t.Errorf("adapters = %d, want 3", len(cfg.Retrieval.Adapters))
	}
}

func TestLoad_MissingEnv(t *testing.T) {
	if _, err := Load("no-such-env"); err == nil {
		t.Error("expected error for missing config file")
	}
}
