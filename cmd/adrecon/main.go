// Command adrecon runs one directory query for computer objects and
// reconciles the result against the GSN reference list. It is a single-shot
// batch process: invoked by a scheduled task, it writes its JSON outputs and
// exits. The exit code reports whether the expected output files were
// produced, not whether the directory query succeeded.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/adrecon/internal/config"
	ldapdir "github.com/kailas-cloud/adrecon/internal/directory/ldap"
	"github.com/kailas-cloud/adrecon/internal/domain"
	"github.com/kailas-cloud/adrecon/internal/domain/filter"
	logpkg "github.com/kailas-cloud/adrecon/internal/logger"
	"github.com/kailas-cloud/adrecon/internal/metrics"
	gsnrepo "github.com/kailas-cloud/adrecon/internal/repository/gsn"
	"github.com/kailas-cloud/adrecon/internal/repository/report"
	queryuc "github.com/kailas-cloud/adrecon/internal/usecase/query"
	reconcileuc "github.com/kailas-cloud/adrecon/internal/usecase/reconcile"
	"github.com/kailas-cloud/adrecon/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		queryOnly     = flag.Bool("query-only", false, "run the directory query and exit")
		reconcileOnly = flag.Bool("reconcile-only", false, "skip the query and reconcile against the persisted result")
		gsnFile       = flag.String("gsn-file", "", "override the GSN reference list path")
	)
	flag.Parse()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting adrecon",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("directory_url", cfg.Directory.URL),
		zap.String("search_base", cfg.Query.SearchBase),
	)

	f, err := filter.NewComputer(cfg.Query.AllowPrefix, cfg.Query.DenyPrefixes)
	if err != nil {
		logger.Error("Invalid filter configuration", zap.Error(err))
		return 1
	}
	spec, err := domain.NewQuerySpec(f, cfg.Query.SearchBase, cfg.Query.OutputFile)
	if err != nil {
		logger.Error("Invalid query configuration", zap.Error(err))
		return 1
	}

	searcher, err := ldapdir.NewClient(ldapdir.Config{
		URL:      cfg.Directory.URL,
		BindDN:   cfg.Directory.BindDN,
		Password: cfg.Directory.Password,
		StartTLS: cfg.Directory.StartTLS,
		PageSize: cfg.Directory.PageSize,
		Timeout:  time.Duration(cfg.Directory.TimeoutSec) * time.Second,
	})
	if err != nil {
		logger.Error("Invalid directory configuration", zap.Error(err))
		return 1
	}

	sink := report.NewSink()
	runMetrics := metrics.NewRun()
	start := time.Now()
	ctx := logpkg.ContextWithLogger(context.Background(), logger)

	degraded := false
	adEntries := domain.NewNameSet(nil)

	if !*reconcileOnly {
		querySvc := queryuc.New(searcher, sink, logger)
		result, err := querySvc.Run(ctx, spec)
		if err != nil {
			// Serialization failure: the output-file contract is broken.
			logger.Error("Failed to persist directory results", zap.Error(err))
			return 1
		}
		adEntries = result.Names()
		degraded = result.Degraded()
	}

	if !*queryOnly {
		gsnPath := cfg.Reconcile.GSNFile
		if *gsnFile != "" {
			gsnPath = *gsnFile
		}
		gsnEntries, err := gsnrepo.NewLoader(gsnPath).Load()
		if err != nil {
			logger.Warn("Could not load GSN entries, comparing against empty set",
				zap.String("path", gsnPath), zap.Error(err))
			gsnEntries = domain.NewNameSet(nil)
		}

		reconcileSvc := reconcileuc.New(sink, sink, cfg.Query.OutputFile, cfg.Reconcile.OutputFile, logger)
		result, err := reconcileSvc.Run(ctx, gsnEntries, adEntries)
		if err != nil {
			logger.Error("Failed to persist comparison results", zap.Error(err))
			return 1
		}

		runMetrics.SetEntries(metrics.SetGSN, gsnEntries.Len())
		runMetrics.SetEntries(metrics.SetMissingInAD, len(result.MissingInAD()))
		runMetrics.SetEntries(metrics.SetMissingInGSN, len(result.MissingInGSN()))
	}

	runMetrics.SetEntries(metrics.SetAD, adEntries.Len())
	runMetrics.ObserveRun(time.Since(start), degraded)
	if cfg.Metrics.Textfile != "" {
		if err := runMetrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn("Failed to write metrics textfile",
				zap.String("path", cfg.Metrics.Textfile), zap.Error(err))
		}
	}

	logger.Info("Run complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("degraded", degraded),
	)
	return 0
}
