package fetch

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudai-x/cwkit/pkg/errors"
	"github.com/cloudai-x/cwkit/pkg/locator"
	"github.com/cloudai-x/cwkit/pkg/logging"
)

// StagedFetcher runs a Fetcher against a staging directory with a
// wall-clock bound, and guarantees no partial staging state survives a
// failed attempt.
type StagedFetcher struct {
	fetcher Fetcher
	timeout time.Duration
}

// NewStaged wraps fetcher with staging lifecycle management and the
// given fetch timeout.
func NewStaged(fetcher Fetcher, timeout time.Duration) *StagedFetcher {
	return &StagedFetcher{fetcher: fetcher, timeout: timeout}
}

// FetchStaged populates stagingPath with the bundle identified by loc.
//
// Any stale staging directory with the same name is removed before the
// fetch starts. The fetch races the timeout; if the deadline wins, the
// underlying transport's eventual result is discarded. On every failure
// path the staging directory is removed before the error is surfaced.
// On success, ownership of the staging tree passes to the caller.
func (s *StagedFetcher) FetchStaged(loc locator.Locator, stagingPath string) error {
	logger := logging.GetLogger("fetch")

	// Guarantee a clean start even if a previous run crashed mid-fetch.
	if err := os.RemoveAll(stagingPath); err != nil {
		return errors.Wrapf(err, errors.ErrStagingCreate, "failed to clear stale staging directory %s", stagingPath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	// The fetch and the deadline race; the channel is buffered so the
	// losing fetch can finish without anyone listening.
	done := make(chan error, 1)
	go func() {
		done <- s.fetcher.Fetch(ctx, loc, stagingPath)
	}()

	var fetchErr error
	select {
	case err := <-done:
		if err != nil && ctx.Err() == context.DeadlineExceeded {
			fetchErr = timeoutError(loc, s.timeout)
		} else {
			fetchErr = err
		}
	case <-ctx.Done():
		fetchErr = timeoutError(loc, s.timeout)
	}

	if fetchErr != nil {
		s.removeStaging(logger, stagingPath)
		return fetchErr
	}

	logger.Debug().Str("staging", stagingPath).Msg("bundle staged")
	return nil
}

// removeStaging deletes the staging tree after a failed fetch. Its own
// failure is logged, never allowed to replace the error the user needs
// to see.
func (s *StagedFetcher) removeStaging(logger zerolog.Logger, stagingPath string) {
	if err := os.RemoveAll(stagingPath); err != nil {
		logger.Warn().Err(err).Str("staging", stagingPath).Msg("failed to remove staging directory")
	}
}

func timeoutError(loc locator.Locator, timeout time.Duration) error {
	return errors.Newf(errors.ErrFetchTimeout,
		"fetching bundle %s did not finish within %s", loc, timeout)
}

// Cleanup removes the staging directory, tolerating its absence.
func Cleanup(stagingPath string) error {
	if err := os.RemoveAll(stagingPath); err != nil {
		return errors.Wrapf(err, errors.ErrStagingCleanup, "failed to remove staging directory %s", stagingPath)
	}
	return nil
}
