// Package reconcile implements the set reconciliation unit.
package reconcile

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/adrecon/internal/domain"
)

const listingCap = 10

// Service compares the GSN reference list against the directory result and
// persists the diff.
type Service struct {
	sink        ComparisonWriter
	reader      NamesReader
	resultsPath string // persisted directory result, used when handed an empty AD set
	outputPath  string
	logger      *zap.Logger
}

// New creates a reconcile service. reader and resultsPath enable the
// fallback of re-reading the persisted directory result when the in-memory
// AD set is empty; pass a zero resultsPath to disable it.
func New(sink ComparisonWriter, reader NamesReader, resultsPath, outputPath string, logger *zap.Logger) *Service {
	return &Service{
		sink:        sink,
		reader:      reader,
		resultsPath: resultsPath,
		outputPath:  outputPath,
		logger:      logger,
	}
}

// Run computes the comparison and persists it as a JSON object at the
// configured output path. Empty inputs are valid: the other side's entries
// all land in the corresponding missing list.
func (s *Service) Run(ctx context.Context, gsn, ad domain.NameSet) (domain.ComparisonResult, error) {
	s.logger.Info("Comparing GSN and AD entries",
		zap.Int("gsn_entries", gsn.Len()),
		zap.Int("ad_entries", ad.Len()),
	)

	ad = s.reloadIfEmpty(ad)
	result := domain.Compare(gsn, ad)

	s.logSide("In GSN but not in AD", result.MissingInAD())
	s.logSide("In AD but not in GSN", result.MissingInGSN())
	s.logger.Info("Comparison summary",
		zap.Int("gsn_entries", gsn.Len()),
		zap.Int("ad_entries", ad.Len()),
		zap.Int("missing_in_ad", len(result.MissingInAD())),
		zap.Int("missing_in_gsn", len(result.MissingInGSN())),
	)

	if err := s.sink.WriteComparison(s.outputPath, result); err != nil {
		return result, err
	}
	s.logger.Info("Comparison results saved", zap.String("output_file", s.outputPath))
	return result, nil
}

// reloadIfEmpty falls back to the persisted directory result when the caller
// passed an empty AD set, e.g. when reconciliation runs in a separate
// invocation from the query.
func (s *Service) reloadIfEmpty(ad domain.NameSet) domain.NameSet {
	if !ad.IsEmpty() || s.reader == nil || s.resultsPath == "" {
		return ad
	}
	loaded, err := s.reader.ReadNames(s.resultsPath)
	if err != nil {
		s.logger.Warn("Could not reload directory results",
			zap.String("path", s.resultsPath), zap.Error(err))
		return ad
	}
	if loaded.Len() > 0 {
		s.logger.Info("Loaded directory entries from previous run",
			zap.Int("entries", loaded.Len()), zap.String("path", s.resultsPath))
	}
	return loaded
}

func (s *Service) logSide(label string, missing []string) {
	if len(missing) == 0 {
		s.logger.Info("No differences", zap.String("side", label))
		return
	}
	n := min(listingCap, len(missing))
	s.logger.Info(label,
		zap.Int("count", len(missing)),
		zap.Strings("entries", missing[:n]),
		zap.Int("remaining", len(missing)-n),
	)
}
