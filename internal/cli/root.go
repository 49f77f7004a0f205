package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crawlcheck/crawlcheck/internal/audit/common/clock"
	"github.com/crawlcheck/crawlcheck/internal/audit/common/log"
	"github.com/crawlcheck/crawlcheck/internal/audit/infra/config"
	"github.com/crawlcheck/crawlcheck/internal/audit/infra/report"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/corpus"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/registry"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/rulemap"
	rmbloom "github.com/crawlcheck/crawlcheck/internal/audit/repos/rulemap/bloom"
	rmbolt "github.com/crawlcheck/crawlcheck/internal/audit/repos/rulemap/bolt"
	rmlru "github.com/crawlcheck/crawlcheck/internal/audit/repos/rulemap/lru"
	"github.com/crawlcheck/crawlcheck/internal/audit/services/auditor"
)

var (
	corpusRoot   string
	presenceCSV  string
	outDir       string
	storePath    string
	registryPath string
	workers      int
	typoCutoff   float64
	logLevel     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crawlcheck",
	Short: "Audit crawler permissions across robots.txt, ai.txt, and llms.txt.",
	Long: `crawlcheck audits how websites declare crawler permissions across the
three coexisting directive files (robots.txt, ai.txt, llms.txt) over a
downloaded corpus, and reports where the declarations agree, disagree, or
contain likely mistakes.

The run is a deterministic, stateless transformation over a static file
tree: it parses the directive files into per-user-agent rule sets, resolves
them with Robots-Exclusion-Protocol precedence, and derives cross-file
diffs, line-attributed conflicts for known AI crawlers, experimental
directives, blocked llms.txt links, and user-agent typo suggestions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := initConfig()
		if err != nil {
			return err
		}
		if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
			return fmt.Errorf("logging configuration error: %w", err)
		}
		return run(cfg)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&corpusRoot, "corpus-root", "", "root directory of date-stamped download snapshots")
	rootCmd.PersistentFlags().StringVar(&presenceCSV, "presence-csv", "", "domain_files_map.csv produced by the download stage")
	rootCmd.PersistentFlags().StringVar(&outDir, "out-dir", "", "directory for report artifacts")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "rule map database file (empty disables persistence)")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "", "AI-crawler registry file (yaml/json/toml), overrides the built-in list")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "number of concurrent domain workers")
	rootCmd.PersistentFlags().Float64Var(&typoCutoff, "typo-cutoff", 0, "minimum similarity for a typo suggestion")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log verbosity: debug, info, warn, error")
}

// initConfig loads env-based config and applies CLI flag overrides.
func initConfig() (*config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if corpusRoot != "" {
		cfg.CorpusRoot = corpusRoot
	}
	if presenceCSV != "" {
		cfg.PresenceCSV = presenceCSV
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}
	if storePath != "" {
		cfg.StorePath = storePath
	}
	if registryPath != "" {
		cfg.RegistryPath = registryPath
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if typoCutoff > 0 {
		cfg.TypoCutoff = typoCutoff
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// run wires the repositories and the audit service, executes the corpus run
// under a signal-cancellable context, and persists the artifacts.
func run(cfg *config.AppConfig) error {
	logger := log.GetLogger()

	reg := registry.Default()
	if cfg.RegistryPath != "" {
		loaded, err := registry.Load(cfg.RegistryPath)
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = loaded
	}

	tree, err := corpus.OpenLatest(cfg.CorpusRoot)
	if err != nil {
		// the one fatal corpus condition: nothing to audit
		return err
	}
	presences, err := corpus.LoadPresenceCSV(cfg.PresenceCSV)
	if err != nil {
		return err
	}

	log.Info(map[string]any{
		"corpus":  tree.Root(),
		"domains": len(presences),
		"workers": cfg.Workers,
		"agents":  len(reg.Agents()),
	}, "starting audit run")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "shutdown signal received")
		cancel()
	}()

	svc := auditor.New(auditor.Options{
		Corpus:     tree,
		Registry:   reg,
		Logger:     logger,
		Workers:    cfg.Workers,
		TypoCutoff: cfg.TypoCutoff,
	})

	result, runErr := svc.Run(ctx, presences)
	if result == nil {
		return runErr
	}

	writer, err := report.NewWriter(cfg.OutDir)
	if err != nil {
		return err
	}
	if err := writer.WriteAll(result); err != nil {
		return err
	}

	if cfg.StorePath != "" {
		if err := persistRuleMap(cfg, result.RuleMap); err != nil {
			return err
		}
	}

	log.Info(map[string]any{
		"out_dir":    cfg.OutDir,
		"rule_map":   result.Summary.DomainsWithRules,
		"conflicts":  result.Summary.ConflictRecords,
		"unreadable": result.Summary.UnreadableFiles,
	}, "artifacts written")
	return runErr
}

// openRuleMapRepo opens the persistent rule map repository configured by
// StorePath, composing the bolt store with the LRU cache and bloom prefilter.
func openRuleMapRepo(cfg *config.AppConfig) (rulemap.Repository, error) {
	store, err := rmbolt.New(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule map store: %w", err)
	}
	cache, err := rmlru.New(int(cfg.CacheSize))
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return rulemap.NewRepository(store, cache, rmbloom.NewFactory(), cfg.BloomFPRate), nil
}

// persistRuleMap rebuilds the rule map snapshot store from this run.
func persistRuleMap(cfg *config.AppConfig, m rulemap.Map) error {
	repo, err := openRuleMapRepo(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	clk := clock.RealClock{}
	version := repo.RepoStats().Store.Version + 1
	if err := repo.RebuildAll(m, version, clk.Now().Unix()); err != nil {
		return fmt.Errorf("failed to rebuild rule map store: %w", err)
	}
	log.Info(map[string]any{
		"store":   cfg.StorePath,
		"domains": len(m),
		"version": version,
	}, "rule map store rebuilt")
	return nil
}
