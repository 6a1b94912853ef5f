// Package source defines the domain models and interfaces for media discovery and retrieval.
package source

import "context"

// Source defines the capabilities of a content provider: free-text search and
// stream lookup for a single item.
type Source interface {
	// Name returns the display name of the source.
	Name() string

	// ID returns the unique identifier of the source.
	ID() string

	// Search returns up to limit raw rows matching the query, in provider order.
	Search(ctx context.Context, query string, limit int) ([]*SearchResult, error)

	// Info returns the raw stream data for the item with the given id.
	Info(ctx context.Context, id string) (*StreamInfo, error)
}
