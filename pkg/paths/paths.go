// Package paths provides centralized path handling for cwkit.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cloudai-x/cwkit/pkg/errors"
)

// Environment variable names
const (
	// EnvTarget overrides the install target directory
	EnvTarget = "CWKIT_TARGET"

	// EnvConfigDir overrides the XDG config directory for cwkit
	EnvConfigDir = "CWKIT_CONFIG_DIR"

	// EnvStagingDir overrides the parent directory for staging trees
	EnvStagingDir = "CWKIT_STAGING_DIR"
)

// Default directories and files
const (
	// CwkitDirName is the directory name for cwkit-specific files
	CwkitDirName = "cwkit"

	// TargetDirName is the default name of the install target directory
	TargetDirName = ".claude"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "cwkit.toml"

	// stagingPrefix namespaces staging directories under the temp dir
	stagingPrefix = "cwkit-staging"
)

// Paths provides centralized path management for cwkit
type Paths interface {
	Target() string
	ConfigDir() string
	ConfigFilePath() string
	StagingDir(bundleName string) string
}

type paths struct {
	target    string
	xdgConfig string
	staging   string

	// processToken makes staging paths collision-resistant between
	// concurrent invocations; the PID alone is not guaranteed unique
	// across all environments.
	processToken string
}

// New creates a new Paths instance installing into the given target
// directory. If target is empty, it is resolved from CWKIT_TARGET or
// defaults to .claude under the current working directory.
func New(target string) (Paths, error) {
	p := &paths{}

	if target == "" {
		target = os.Getenv(EnvTarget)
	}
	if target == "" {
		target = TargetDirName
	}
	absTarget, err := filepath.Abs(expandHome(target))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for target %q", target)
	}
	p.target = absTarget

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, CwkitDirName)
	}

	if stagingDir := os.Getenv(EnvStagingDir); stagingDir != "" {
		p.staging = expandHome(stagingDir)
	} else {
		p.staging = os.TempDir()
	}

	p.processToken = fmt.Sprintf("%d-%s", os.Getpid(), randomToken())

	return p, nil
}

// Target returns the absolute path of the install target directory.
func (p *paths) Target() string {
	return p.target
}

// ConfigDir returns the cwkit configuration directory.
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// ConfigFilePath returns the path of the user configuration file.
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// StagingDir returns the staging path for the given bundle name.
// The path is namespaced by a per-process token so that concurrent
// invocations never collide on the temporary location.
func (p *paths) StagingDir(bundleName string) string {
	return filepath.Join(p.staging, fmt.Sprintf("%s-%s-%s", stagingPrefix, bundleName, p.processToken))
}

// UserConfigFilePath returns the user configuration file location
// without requiring a resolved target. Used before configuration is
// loaded, since the config file itself can set the target.
func UserConfigFilePath() string {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		return filepath.Join(expandHome(configDir), ConfigFileName)
	}
	return filepath.Join(xdg.ConfigHome, CwkitDirName, ConfigFileName)
}

// randomToken returns a short random hex string.
func randomToken() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// Extremely unlikely; fall back to a fixed suffix, the PID
		// still separates most concurrent invocations.
		return "00000000"
	}
	return hex.EncodeToString(buf)
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
