package query

import (
	"context"

	"github.com/kailas-cloud/adrecon/internal/domain"
	"github.com/kailas-cloud/adrecon/internal/domain/filter"
)

// Searcher performs the scoped, filtered directory lookup.
type Searcher interface {
	SearchComputerNames(ctx context.Context, searchBase string, f filter.Computer) ([]string, error)
}

// NamesWriter persists a name set as a JSON array.
type NamesWriter interface {
	WriteNames(path string, names domain.NameSet) error
}
