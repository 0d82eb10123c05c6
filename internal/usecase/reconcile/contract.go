package reconcile

import "github.com/kailas-cloud/adrecon/internal/domain"

// ComparisonWriter persists a comparison result as a JSON object.
type ComparisonWriter interface {
	WriteComparison(path string, result domain.ComparisonResult) error
}

// NamesReader loads a previously persisted name list.
type NamesReader interface {
	ReadNames(path string) (domain.NameSet, error)
}
