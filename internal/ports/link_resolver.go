package ports

import "context"

// Contract for expanding a short map-sharing link into the full URL it
// redirects to. The full URL usually carries the coordinates.
type LinkResolver interface {
	Resolve(ctx context.Context, link string) (string, error)
}
