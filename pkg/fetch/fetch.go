// Package fetch downloads a remote workflow bundle into a staging
// directory under a wall-clock bound.
//
// The transport itself is an opaque capability behind the Fetcher
// interface; the staged wrapper owns the staging directory's lifecycle
// and guarantees it never survives a failed attempt.
package fetch

import (
	"context"

	"github.com/cloudai-x/cwkit/pkg/locator"
)

// Fetcher materializes the bundle identified by loc under dest.
// dest must not exist; a successful call leaves a fully populated tree
// there. Implementations classify their failures with the error codes
// from pkg/errors so the operator can tell "no internet" apart from
// "that repository does not exist".
type Fetcher interface {
	Fetch(ctx context.Context, loc locator.Locator, dest string) error
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, loc locator.Locator, dest string) error

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, loc locator.Locator, dest string) error {
	return f(ctx, loc, dest)
}
