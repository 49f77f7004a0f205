package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// CorpusRoot is the directory holding date-stamped download snapshots.
	CorpusRoot string `koanf:"corpus_root" validate:"required"`

	// PresenceCSV is the domain->files map produced by the download stage.
	PresenceCSV string `koanf:"presence_csv" validate:"required"`

	// OutDir is where report artifacts are written.
	OutDir string `koanf:"out_dir" validate:"required"`

	// StorePath is the rule map database file. Empty disables persistence.
	StorePath string `koanf:"store_path"`

	// RegistryPath optionally overrides the built-in AI-crawler registry
	// (YAML, JSON, or TOML file with an "agents" list).
	RegistryPath string `koanf:"registry_path"`

	// Workers bounds the per-domain worker pool.
	Workers int `koanf:"workers" validate:"required,gte=1,lte=256"`

	// CacheSize is the capacity of the decoded rule-map LRU cache.
	CacheSize uint `koanf:"cache_size" validate:"required,gte=1"`

	// BloomFPRate is the rule-map Bloom prefilter target false-positive rate.
	BloomFPRate float64 `koanf:"bloom_fp_rate" validate:"required,gt=0,lt=1"`

	// TypoCutoff is the minimum similarity for a typo suggestion.
	TypoCutoff float64 `koanf:"typo_cutoff" validate:"required,gt=0,lte=1"`
}

// envLoader is a function that loads environment variables with the prefix
// "CRAWLCHECK_". It transforms the keys to lowercase and removes the prefix,
// and can be mocked in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "CRAWLCHECK_",
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, "CRAWLCHECK_")), value
		},
	}), nil)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	// Load default values using structs provider.
	k.Load(structs.Provider(AppConfig{
		Env:         "prod",
		LogLevel:    "info",
		CorpusRoot:  "txt_downloads",
		PresenceCSV: "analysis_output/domain_files_map.csv",
		OutDir:      "audit_output",
		Workers:     4,
		CacheSize:   1000,
		BloomFPRate: 0.01,
		TypoCutoff:  0.6,
	}, "koanf"), nil)

	err := envLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig

	// Unmarshal the loaded configuration into AppConfig struct.
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Validate the configuration.
	validate := validator.New(validator.WithRequiredStructEnabled())

	err = validate.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
