package domain

import (
	"fmt"

	"github.com/kailas-cloud/adrecon/internal/domain/filter"
)

// QuerySpec is the immutable configuration of one directory query: which
// names qualify, which subtree to search, and where the result is persisted.
type QuerySpec struct {
	filter     filter.Computer
	searchBase string
	outputPath string
}

// NewQuerySpec validates and creates a QuerySpec.
func NewQuerySpec(f filter.Computer, searchBase, outputPath string) (QuerySpec, error) {
	if searchBase == "" {
		return QuerySpec{}, fmt.Errorf("search base is required")
	}
	if outputPath == "" {
		return QuerySpec{}, fmt.Errorf("output path is required")
	}
	return QuerySpec{filter: f, searchBase: searchBase, outputPath: outputPath}, nil
}

// Filter returns the computer-object predicate.
func (q QuerySpec) Filter() filter.Computer { return q.filter }

// SearchBase returns the subtree the search is restricted to.
func (q QuerySpec) SearchBase() string { return q.searchBase }

// OutputPath returns where the result list is persisted.
func (q QuerySpec) OutputPath() string { return q.outputPath }
