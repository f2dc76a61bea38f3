// Package merge implements the additive merge of a staged bundle tree
// into the install target.
//
// The merge never overwrites or deletes anything that already exists in
// the target: an existing entry of any kind wins over the staged one
// unconditionally. Only the allowlisted top-level directories are
// considered; everything else in the staging tree is ignored entirely.
package merge

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudai-x/cwkit/pkg/errors"
	"github.com/cloudai-x/cwkit/pkg/logging"
)

// scope is the fixed allowlist of top-level bundle directories eligible
// for merging. It is compiled in and not user-configurable.
var scope = []string{"agents", "commands", "skills", "hooks"}

// Scope returns the allowlist of mergeable top-level directory names.
func Scope() []string {
	out := make([]string, len(scope))
	copy(out, scope)
	return out
}

// InScope reports whether name is an allowlisted top-level directory.
func InScope(name string) bool {
	for _, s := range scope {
		if s == name {
			return true
		}
	}
	return false
}

// Stats accumulates merge outcomes. Directories are not counted; Added
// and Skipped track files and symlinks only.
type Stats struct {
	Added   int
	Skipped int
}

// dirPair is one pending (source, destination) directory to reconcile.
type dirPair struct {
	src string
	dst string
}

// Merge reconciles the allowlisted subdirectories of src into dst and
// returns the accumulated statistics. dst subdirectories are created as
// needed; existing entries are never touched. The first filesystem
// failure aborts the traversal.
func Merge(src, dst string) (Stats, error) {
	logger := logging.GetLogger("merge")
	stats := Stats{}

	dstRoot, err := filepath.Abs(dst)
	if err != nil {
		return stats, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve target root %q", dst)
	}

	// Explicit work list instead of call recursion so stack usage stays
	// bounded for arbitrarily deep bundle trees.
	var pending []dirPair

	for _, name := range scope {
		srcDir := filepath.Join(src, name)
		info, err := os.Lstat(srcDir)
		if err != nil || !info.IsDir() {
			continue
		}
		dstDir := filepath.Join(dstRoot, name)
		if err := ensureDir(dstDir); err != nil {
			return stats, err
		}
		pending = append(pending, dirPair{src: srcDir, dst: dstDir})
	}

	for len(pending) > 0 {
		pair := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := os.ReadDir(pair.src)
		if err != nil {
			return stats, errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", pair.src)
		}

		for _, entry := range entries {
			srcPath := filepath.Join(pair.src, entry.Name())
			dstPath := filepath.Join(pair.dst, entry.Name())

			switch mode := entry.Type(); {
			case mode.IsDir():
				if !destExists(dstPath) {
					if err := ensureDir(dstPath); err != nil {
						return stats, err
					}
				}
				// Recurse unconditionally so new files can land among
				// existing untouched siblings at any depth.
				pending = append(pending, dirPair{src: srcPath, dst: dstPath})

			case mode.IsRegular():
				if destExists(dstPath) {
					stats.Skipped++
					continue
				}
				if err := copyFile(srcPath, dstPath); err != nil {
					return stats, err
				}
				logger.Debug().Str("path", dstPath).Msg("file added")
				stats.Added++

			case mode&os.ModeSymlink != 0:
				if destExists(dstPath) {
					stats.Skipped++
					continue
				}
				target, err := os.Readlink(srcPath)
				if err != nil {
					return stats, errors.Wrapf(err, errors.ErrFileAccess, "failed to read link %s", srcPath)
				}
				if !linkContained(pair.dst, target, dstRoot) {
					logger.Warn().
						Str("link", entry.Name()).
						Str("target", target).
						Msg("symlink escapes the target root, not installing it")
					stats.Skipped++
					continue
				}
				if err := os.Symlink(target, dstPath); err != nil {
					return stats, errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create symlink %s", dstPath)
				}
				logger.Debug().Str("path", dstPath).Str("target", target).Msg("symlink added")
				stats.Added++

			default:
				// Sockets, fifos and other special files are neither
				// copied nor counted.
				logger.Trace().Str("path", srcPath).Msg("ignoring special file")
			}
		}
	}

	return stats, nil
}

// destExists reports whether any entry (of any kind, including a broken
// symlink) exists at path. The check must not follow links.
func destExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// linkContained reports whether a symlink created in linkDir with the
// given target would resolve inside root.
func linkContained(linkDir, target, root string) bool {
	resolved := target
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(linkDir, target)
	}
	resolved = filepath.Clean(resolved)
	return resolved == root || strings.HasPrefix(resolved, root+string(filepath.Separator))
}

// ensureDir creates path (and parents) if it does not already exist.
func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path)
	}
	return nil
}

// copyFile copies src to dst verbatim, preserving the file mode.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to open %s", src)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to stat %s", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to create %s", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s", src)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to finalize %s", dst)
	}
	return nil
}
