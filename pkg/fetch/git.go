package fetch

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/cloudai-x/cwkit/pkg/errors"
	"github.com/cloudai-x/cwkit/pkg/locator"
	"github.com/cloudai-x/cwkit/pkg/logging"
)

// GitFetcher fetches bundles by shallow-cloning their repository.
type GitFetcher struct {
	// RemoteTemplate is expanded with the owner/name locator to form
	// the clone URL, e.g. "https://github.com/%s.git".
	RemoteTemplate string
}

// NewGitFetcher creates a GitFetcher cloning from the given URL template.
func NewGitFetcher(remoteTemplate string) *GitFetcher {
	return &GitFetcher{RemoteTemplate: remoteTemplate}
}

// Fetch clones the repository into dest. History is not needed for an
// install, so the clone is depth 1.
func (g *GitFetcher) Fetch(ctx context.Context, loc locator.Locator, dest string) error {
	logger := logging.GetLogger("fetch")
	url := fmt.Sprintf(g.RemoteTemplate, loc.String())

	logger.Debug().Str("url", url).Str("dest", dest).Msg("cloning bundle")

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", "--quiet", url, dest)
	// Never fall back to interactive credential prompts; a private or
	// missing repository must fail, not hang.
	cmd.Env = append(cmd.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			// The race winner (the deadline) classifies this; just
			// propagate the cancellation.
			return ctx.Err()
		}
		return classifyGitError(err, loc, stderr.String())
	}
	return nil
}

// classifyGitError maps git's stderr to the fetch error taxonomy.
func classifyGitError(err error, loc locator.Locator, stderr string) error {
	lower := strings.ToLower(stderr)

	switch {
	case strings.Contains(lower, "could not resolve host"),
		strings.Contains(lower, "unable to access"),
		strings.Contains(lower, "network is unreachable"),
		strings.Contains(lower, "connection refused"),
		strings.Contains(lower, "connection timed out"):
		return errors.Wrapf(err, errors.ErrFetchNetwork,
			"failed to reach the remote for %s: check your internet connection, firewall, or proxy settings", loc).
			WithDetail("stderr", strings.TrimSpace(stderr))

	case strings.Contains(lower, "not found"),
		strings.Contains(lower, "does not exist"),
		strings.Contains(lower, "authentication failed"),
		strings.Contains(lower, "access denied"):
		return errors.Wrapf(err, errors.ErrRepoNotFound,
			"bundle %s was not found: verify the repository exists and is visible to you", loc).
			WithDetail("stderr", strings.TrimSpace(stderr))

	default:
		return errors.Wrapf(err, errors.ErrFetchFailed, "failed to fetch bundle %s", loc).
			WithDetail("stderr", strings.TrimSpace(stderr))
	}
}
