// Package bundle reads optional workflow bundle metadata.
//
// A bundle may carry a workflow.toml at its root describing itself.
// The file is informational only: it is never copied into the target
// (it sits outside the merge allowlist) and its absence is not an
// error.
package bundle

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/cloudai-x/cwkit/pkg/errors"
)

// MetadataFileName is the optional metadata file at the bundle root.
const MetadataFileName = "workflow.toml"

// Metadata describes a workflow bundle.
type Metadata struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Homepage    string `toml:"homepage"`
}

// ReadMetadata loads workflow.toml from the given bundle root.
// A missing file yields (nil, nil); a malformed file is an error.
func ReadMetadata(bundleRoot string) (*Metadata, error) {
	path := filepath.Join(bundleRoot, MetadataFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	var meta Metadata
	if err := toml.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "malformed %s", path)
	}
	return &meta, nil
}

// Readme returns the contents of the bundle's README.md, or "" if the
// bundle has none.
func Readme(bundleRoot string) string {
	data, err := os.ReadFile(filepath.Join(bundleRoot, "README.md"))
	if err != nil {
		return ""
	}
	return string(data)
}
