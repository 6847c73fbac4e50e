package ports

import "context"

// Contract for caching short link -> expanded link resolutions.
type LinkCache interface {
	// Return cached expansions for the links that have an entry.
	GetMany(ctx context.Context, links []string) (map[string]string, error)
	// Store short link -> expanded link mappings.
	PutMany(ctx context.Context, results map[string]string) error
}
