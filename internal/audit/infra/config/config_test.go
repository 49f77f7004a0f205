package config

import (
	"os"
	"testing"
)

func clearEnv() {
	for _, key := range []string{
		"CRAWLCHECK_ENV", "CRAWLCHECK_LOG_LEVEL", "CRAWLCHECK_CORPUS_ROOT",
		"CRAWLCHECK_PRESENCE_CSV", "CRAWLCHECK_OUT_DIR", "CRAWLCHECK_STORE_PATH",
		"CRAWLCHECK_REGISTRY_PATH", "CRAWLCHECK_WORKERS", "CRAWLCHECK_CACHE_SIZE",
		"CRAWLCHECK_BLOOM_FP_RATE", "CRAWLCHECK_TYPO_CUTOFF",
	} {
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Env != "prod" {
		t.Errorf("Env = %q, want prod", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.CorpusRoot != "txt_downloads" {
		t.Errorf("CorpusRoot = %q", cfg.CorpusRoot)
	}
	if cfg.PresenceCSV != "analysis_output/domain_files_map.csv" {
		t.Errorf("PresenceCSV = %q", cfg.PresenceCSV)
	}
	if cfg.OutDir != "audit_output" {
		t.Errorf("OutDir = %q", cfg.OutDir)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.CacheSize != 1000 {
		t.Errorf("CacheSize = %d, want 1000", cfg.CacheSize)
	}
	if cfg.BloomFPRate != 0.01 {
		t.Errorf("BloomFPRate = %v, want 0.01", cfg.BloomFPRate)
	}
	if cfg.TypoCutoff != 0.6 {
		t.Errorf("TypoCutoff = %v, want 0.6", cfg.TypoCutoff)
	}
	if cfg.StorePath != "" || cfg.RegistryPath != "" {
		t.Errorf("optional paths should default empty: %q %q", cfg.StorePath, cfg.RegistryPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv()
	t.Setenv("CRAWLCHECK_ENV", "dev")
	t.Setenv("CRAWLCHECK_LOG_LEVEL", "debug")
	t.Setenv("CRAWLCHECK_CORPUS_ROOT", "/data/downloads")
	t.Setenv("CRAWLCHECK_WORKERS", "16")
	t.Setenv("CRAWLCHECK_TYPO_CUTOFF", "0.8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want dev", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.CorpusRoot != "/data/downloads" {
		t.Errorf("CorpusRoot = %q", cfg.CorpusRoot)
	}
	if cfg.Workers != 16 {
		t.Errorf("Workers = %d, want 16", cfg.Workers)
	}
	if cfg.TypoCutoff != 0.8 {
		t.Errorf("TypoCutoff = %v, want 0.8", cfg.TypoCutoff)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad env", "CRAWLCHECK_ENV", "staging"},
		{"bad log level", "CRAWLCHECK_LOG_LEVEL", "verbose"},
		{"zero workers", "CRAWLCHECK_WORKERS", "0"},
		{"workers over cap", "CRAWLCHECK_WORKERS", "1000"},
		{"fp rate out of range", "CRAWLCHECK_BLOOM_FP_RATE", "1.5"},
		{"cutoff out of range", "CRAWLCHECK_TYPO_CUTOFF", "2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv()
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() with %s=%s expected validation error", tc.key, tc.value)
			}
		})
	}
}
