package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pledgekit/reconciler/internal/app"
	"github.com/pledgekit/reconciler/internal/domain/matcher"
	"github.com/pledgekit/reconciler/internal/infrastructure/config"
	"github.com/pledgekit/reconciler/internal/infrastructure/logging"
	"github.com/pledgekit/reconciler/internal/infrastructure/storage"
)

func main() {
	// Parse flags
	var (
		configFile = flag.String("config", "config.yaml", "Configuration file path")
		members    = flag.String("members", "", "Members CSV path (overrides config)")
		supporters = flag.String("supporters", "", "Supporters CSV path (overrides config)")
		dbPath     = flag.String("db", "", "Database path (overrides config)")
		dryRun     = flag.Bool("dry-run", false, "Run without persisting results")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Load configuration
	cfg := config.LoadOrEnvWithPath(*configFile)
	if *members != "" {
		cfg.Inputs.MembersFile = *members
	}
	if *supporters != "" {
		cfg.Inputs.SupportersFile = *supporters
	}
	if *dbPath != "" {
		cfg.Storage.DatabasePath = *dbPath
	}
	if *verbose {
		cfg.Observability.Logging.Level = "debug"
	}

	logger := logging.NewLogger(cfg.Observability.Logging)

	// Initialize storage unless this is a dry run
	var repo storage.Repository
	if !*dryRun {
		store, err := storage.NewStorage(cfg.Storage.DatabasePath)
		if err != nil {
			logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer store.Close()
		repo = store
	}

	runner := app.NewRunner(cfg, repo, logger)
	out, err := runner.Run()
	if err != nil {
		logger.Error("Reconciliation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	printSummary(logger, out)

	if len(out.SourceErrors) > 0 {
		// Partial run: some sources never loaded.
		os.Exit(2)
	}
}

func printSummary(logger *slog.Logger, out *app.Output) {
	logger.Info("run complete",
		slog.String("run_id", out.RunID),
		slog.Int("roster_entries", len(out.Roster.Entries)),
		slog.Int("transactions", out.Summary.Transactions),
		slog.Int("matched", out.Summary.Matched),
		slog.Int("unmatched", out.Summary.Unmatched),
		slog.Int("system_noise", out.Summary.SystemNoise),
		slog.String("match_rate", fmt.Sprintf("%.1f%%", out.Summary.MatchRate*100)))

	for _, method := range []matcher.Method{
		matcher.MethodExactName,
		matcher.MethodCompanyNormalized,
		matcher.MethodCompanyKeyword,
		matcher.MethodCompanyPartial,
		matcher.MethodNameSimilarity,
		matcher.MethodAmountBased,
	} {
		if n := out.Summary.ByMethod[method]; n > 0 {
			logger.Info("method", slog.String("name", string(method)), slog.Int("count", n))
		}
	}

	for _, p := range out.Summary.NewPeople {
		logger.Info("new person candidate",
			slog.String("name", p.Name),
			slog.Int("transactions", p.Transactions),
			slog.Float64("total", p.Total))
	}

	for _, err := range out.SourceErrors {
		logger.Warn("source not loaded", slog.String("error", err.Error()))
	}
}
