// Package query implements the directory query unit.
package query

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/adrecon/internal/domain"
)

const sampleSize = 5

// Result is the outcome of one directory query run.
type Result struct {
	names    domain.NameSet
	degraded bool
	cause    error
}

// Names returns the queried name set (empty when degraded).
func (r Result) Names() domain.NameSet { return r.names }

// Degraded reports whether the lookup failed and was replaced by an empty set.
func (r Result) Degraded() bool { return r.degraded }

// Cause returns the lookup error behind a degraded result, or nil.
func (r Result) Cause() error { return r.cause }

// Service runs the directory query and persists its result.
//
// Directory failures are deliberately fail-open: the error is logged and the
// run continues with an empty set, because downstream tooling depends on the
// output file always existing. An empty output is therefore ambiguous between
// "zero matches" and "query failed"; Result.Degraded disambiguates for this
// process, the file on disk does not.
type Service struct {
	searcher Searcher
	sink     NamesWriter
	logger   *zap.Logger
}

// New creates a query service.
func New(searcher Searcher, sink NamesWriter, logger *zap.Logger) *Service {
	return &Service{searcher: searcher, sink: sink, logger: logger}
}

// Run executes the query described by spec and persists the result as a
// JSON array at spec.OutputPath(). The file is written on every path,
// including lookup failure; only a failure to write it is returned as an
// error.
func (s *Service) Run(ctx context.Context, spec domain.QuerySpec) (Result, error) {
	s.logger.Info("Starting directory query",
		zap.String("search_base", spec.SearchBase()),
		zap.String("allow_prefix", spec.Filter().AllowPrefix()),
		zap.Strings("deny_prefixes", spec.Filter().DenyPrefixes()),
	)
	start := time.Now()

	var result Result
	names, err := s.searcher.SearchComputerNames(ctx, spec.SearchBase(), spec.Filter())
	if err != nil {
		s.logger.Error("Directory query failed, continuing with empty result",
			zap.Error(err),
			zap.String("hint", "check bind credentials, network reachability and the search base"),
		)
		result = Result{names: domain.NewNameSet(nil), degraded: true, cause: err}
	} else {
		result = Result{names: domain.NewNameSet(names)}
	}

	if err := s.sink.WriteNames(spec.OutputPath(), result.names); err != nil {
		return result, err
	}

	s.logger.Info("Directory query complete",
		zap.Int("entries", result.names.Len()),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("output_file", spec.OutputPath()),
	)
	s.logSample(result.names)
	return result, nil
}

// logSample prints the first few names so an operator can eyeball the run.
func (s *Service) logSample(names domain.NameSet) {
	if names.IsEmpty() {
		s.logger.Warn("No directory hostnames found")
		return
	}
	sorted := names.Sorted()
	n := min(sampleSize, len(sorted))
	s.logger.Info("Directory hostname sample",
		zap.Strings("sample", sorted[:n]),
		zap.Int("remaining", len(sorted)-n),
	)
}
