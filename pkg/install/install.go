// Package install orchestrates the full pipeline: validate the
// locator, fetch the bundle into staging, merge it into the target,
// and summarize the result.
//
// The pipeline is strictly one-directional and the merge is the only
// stage that mutates persistent state. The staging tree is a scoped
// resource: it is removed on every exit path once the fetch has run.
package install

import (
	"os"
	"time"

	"github.com/cloudai-x/cwkit/pkg/bundle"
	"github.com/cloudai-x/cwkit/pkg/config"
	"github.com/cloudai-x/cwkit/pkg/fetch"
	"github.com/cloudai-x/cwkit/pkg/locator"
	"github.com/cloudai-x/cwkit/pkg/logging"
	"github.com/cloudai-x/cwkit/pkg/merge"
	"github.com/cloudai-x/cwkit/pkg/paths"
	"github.com/cloudai-x/cwkit/pkg/report"
)

// Options controls a single install invocation.
type Options struct {
	// Locator is the owner/name bundle locator. Empty means the
	// configured default bundle.
	Locator string

	// Target overrides the install target directory.
	Target string

	// Timeout overrides the configured fetch timeout when positive.
	Timeout time.Duration

	// Fetcher overrides the transport. Nil means git over the
	// configured remote template.
	Fetcher fetch.Fetcher
}

// Result is what a successful install produces.
type Result struct {
	Locator  locator.Locator
	Target   string
	Metadata *bundle.Metadata
	Stats    merge.Stats
	Summary  report.Summary
}

// Install runs the pipeline and returns the merge statistics plus the
// post-install summary of the target tree.
func Install(cfg *config.Config, opts Options) (*Result, error) {
	logger := logging.GetLogger("install")

	raw := opts.Locator
	if raw == "" {
		raw = cfg.DefaultBundle
	}

	// Validation is the hard stop before any network or filesystem work.
	loc, err := locator.Parse(raw)
	if err != nil {
		return nil, err
	}

	p, err := paths.New(ResolveTarget(opts.Target, cfg))
	if err != nil {
		return nil, err
	}

	staging := p.StagingDir(loc.Name)
	staged := fetch.NewStaged(resolveFetcher(opts, cfg), resolveTimeout(opts, cfg))

	done := logging.LogOperationStart(logger, "install "+loc.String())
	defer done()

	if err := staged.FetchStaged(loc, staging); err != nil {
		return nil, err
	}

	// The staging tree must not outlive the operation, whichever way it
	// ends. A failed cleanup is logged but never replaces the outcome
	// the user needs to see.
	defer func() {
		if err := fetch.Cleanup(staging); err != nil {
			logger.Warn().Err(err).Str("staging", staging).Msg("staging cleanup failed")
		}
	}()

	meta, err := bundle.ReadMetadata(staging)
	if err != nil {
		// Metadata is informational; malformed metadata does not stop
		// the install.
		logger.Warn().Err(err).Msg("ignoring malformed bundle metadata")
		meta = nil
	}

	stats, err := merge.Merge(staging, p.Target())
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("bundle", loc.String()).
		Str("target", p.Target()).
		Int("added", stats.Added).
		Int("skipped", stats.Skipped).
		Msg("bundle installed")

	return &Result{
		Locator:  loc,
		Target:   p.Target(),
		Metadata: meta,
		Stats:    stats,
		Summary:  report.Summarize(p.Target()),
	}, nil
}

// Preview is the result of inspecting a bundle without installing it.
type Preview struct {
	Locator  locator.Locator
	Metadata *bundle.Metadata
	Readme   string
}

// Inspect fetches a bundle into staging, reads its description, and
// removes the staging tree again. Nothing is installed.
func Inspect(cfg *config.Config, opts Options) (*Preview, error) {
	logger := logging.GetLogger("install")

	raw := opts.Locator
	if raw == "" {
		raw = cfg.DefaultBundle
	}
	loc, err := locator.Parse(raw)
	if err != nil {
		return nil, err
	}

	p, err := paths.New(ResolveTarget(opts.Target, cfg))
	if err != nil {
		return nil, err
	}

	staging := p.StagingDir(loc.Name)
	staged := fetch.NewStaged(resolveFetcher(opts, cfg), resolveTimeout(opts, cfg))

	if err := staged.FetchStaged(loc, staging); err != nil {
		return nil, err
	}
	defer func() {
		if err := fetch.Cleanup(staging); err != nil {
			logger.Warn().Err(err).Str("staging", staging).Msg("staging cleanup failed")
		}
	}()

	meta, err := bundle.ReadMetadata(staging)
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring malformed bundle metadata")
		meta = nil
	}

	return &Preview{
		Locator:  loc,
		Metadata: meta,
		Readme:   bundle.Readme(staging),
	}, nil
}

// ResolveTarget picks the install target: explicit flag, then the
// CWKIT_TARGET environment variable, then configuration.
func ResolveTarget(flagTarget string, cfg *config.Config) string {
	if flagTarget != "" {
		return flagTarget
	}
	if env := os.Getenv(paths.EnvTarget); env != "" {
		return env
	}
	return cfg.Target
}

func resolveTimeout(opts Options, cfg *config.Config) time.Duration {
	if opts.Timeout > 0 {
		return opts.Timeout
	}
	return cfg.FetchTimeout
}

func resolveFetcher(opts Options, cfg *config.Config) fetch.Fetcher {
	if opts.Fetcher != nil {
		return opts.Fetcher
	}
	return fetch.NewGitFetcher(cfg.RemoteTemplate)
}
