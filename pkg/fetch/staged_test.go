// pkg/fetch/staged_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Filesystem (t.TempDir)
// PURPOSE: Test staging lifecycle, timeout racing, and failure cleanup

package fetch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cloudai-x/cwkit/pkg/errors"
	"github.com/cloudai-x/cwkit/pkg/fetch"
	"github.com/cloudai-x/cwkit/pkg/locator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = locator.Locator{Owner: "CloudAI-X", Name: "claude-workflow"}

// populatingFetcher simulates a successful transport by writing a file
// into the destination.
func populatingFetcher(t *testing.T) fetch.Fetcher {
	t.Helper()
	return fetch.FetcherFunc(func(ctx context.Context, loc locator.Locator, dest string) error {
		if err := os.MkdirAll(filepath.Join(dest, "agents"), 0755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dest, "agents", "a.md"), []byte("a"), 0644)
	})
}

func TestFetchStaged_Success(t *testing.T) {
	staging := filepath.Join(t.TempDir(), "staging")
	staged := fetch.NewStaged(populatingFetcher(t), time.Second)

	require.NoError(t, staged.FetchStaged(testLoc, staging))
	assert.FileExists(t, filepath.Join(staging, "agents", "a.md"))
}

func TestFetchStaged_RemovesStaleStagingFirst(t *testing.T) {
	staging := filepath.Join(t.TempDir(), "staging")
	stale := filepath.Join(staging, "leftover.txt")
	require.NoError(t, os.MkdirAll(staging, 0755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	staged := fetch.NewStaged(populatingFetcher(t), time.Second)
	require.NoError(t, staged.FetchStaged(testLoc, staging))

	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(staging, "agents", "a.md"))
}

func TestFetchStaged_TimeoutClassifiedAndCleaned(t *testing.T) {
	staging := filepath.Join(t.TempDir(), "staging")

	// A transport that never resolves until the context is cancelled.
	hanging := fetch.FetcherFunc(func(ctx context.Context, loc locator.Locator, dest string) error {
		if err := os.MkdirAll(dest, 0755); err != nil {
			return err
		}
		<-ctx.Done()
		return ctx.Err()
	})

	staged := fetch.NewStaged(hanging, 20*time.Millisecond)
	err := staged.FetchStaged(testLoc, staging)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFetchTimeout))
	assert.NoDirExists(t, staging)
}

func TestFetchStaged_FailureCleansStaging(t *testing.T) {
	staging := filepath.Join(t.TempDir(), "staging")

	failing := fetch.FetcherFunc(func(ctx context.Context, loc locator.Locator, dest string) error {
		// Leave partial state behind to prove it gets removed
		if err := os.MkdirAll(dest, 0755); err != nil {
			return err
		}
		_ = os.WriteFile(filepath.Join(dest, "partial"), []byte("x"), 0644)
		return errors.New(errors.ErrRepoNotFound, "no such repository")
	})

	staged := fetch.NewStaged(failing, time.Second)
	err := staged.FetchStaged(testLoc, staging)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepoNotFound))
	assert.NoDirExists(t, staging)
}

func TestFetchStaged_ErrorPropagatesUnmodified(t *testing.T) {
	staging := filepath.Join(t.TempDir(), "staging")
	netErr := errors.New(errors.ErrFetchNetwork, "could not resolve host")

	failing := fetch.FetcherFunc(func(ctx context.Context, loc locator.Locator, dest string) error {
		return netErr
	})

	staged := fetch.NewStaged(failing, time.Second)
	err := staged.FetchStaged(testLoc, staging)
	assert.Equal(t, errors.ErrFetchNetwork, errors.GetErrorCode(err))
}

func TestCleanup(t *testing.T) {
	staging := filepath.Join(t.TempDir(), "staging")
	require.NoError(t, os.MkdirAll(filepath.Join(staging, "agents"), 0755))

	require.NoError(t, fetch.Cleanup(staging))
	assert.NoDirExists(t, staging)

	// Absence is tolerated
	require.NoError(t, fetch.Cleanup(staging))
}
