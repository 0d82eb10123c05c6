// Package directory defines the contract for the upstream directory service.
package directory

import (
	"context"

	"github.com/kailas-cloud/adrecon/internal/domain/filter"
)

// Searcher performs one scoped, filtered lookup of computer-object names.
// Implementations own connection lifecycle for the single call; callers hold
// no connection state between runs.
type Searcher interface {
	// SearchComputerNames returns the names of all computer objects under
	// searchBase matching f, in discovery order.
	SearchComputerNames(ctx context.Context, searchBase string, f filter.Computer) ([]string, error)
}
