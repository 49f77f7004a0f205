package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crawlcheck/crawlcheck/internal/audit/common/log"
	"github.com/crawlcheck/crawlcheck/internal/audit/common/utils"
	"github.com/crawlcheck/crawlcheck/internal/audit/infra/config"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/rulemap"
)

// lookupCmd serves persisted rule maps without re-parsing the corpus.
var lookupCmd = &cobra.Command{
	Use:   "lookup <domain>...",
	Short: "Query the rule map store for one or more domains.",
	Long: `lookup reads the rule map database written by a previous audit run and
prints the declared rules for each requested domain as JSON, keyed by
source file and user-agent token. Domains absent from the store are
reported on stderr and make the command exit non-zero.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := initConfig()
		if err != nil {
			return err
		}
		if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
			return fmt.Errorf("logging configuration error: %w", err)
		}
		return lookup(cfg, cmd.OutOrStdout(), args)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

// lookup resolves each domain through the repository read path and prints
// the found rules as one JSON object keyed by canonical domain.
func lookup(cfg *config.AppConfig, w io.Writer, domains []string) error {
	if cfg.StorePath == "" {
		return fmt.Errorf("no rule map store configured; set --store or CRAWLCHECK_STORE_PATH")
	}
	repo, err := openRuleMapRepo(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	stats := repo.RepoStats().Store
	if stats.DomainCount == 0 {
		return fmt.Errorf("rule map store %s holds no snapshot; run an audit with --store first", cfg.StorePath)
	}

	out := make(rulemap.Map, len(domains))
	var missing []string
	for _, arg := range domains {
		dom := utils.CanonicalDomain(arg)
		rules, found := repo.Rules(dom)
		if !found {
			missing = append(missing, dom)
			continue
		}
		out[dom] = rules
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}

	if len(missing) > 0 {
		return fmt.Errorf("%d domain(s) not in rule map store: %v", len(missing), missing)
	}
	log.Debug(map[string]any{
		"store":   cfg.StorePath,
		"version": stats.Version,
		"domains": len(out),
	}, "rule map lookup served")
	return nil
}
