// pkg/merge/merge_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Filesystem (t.TempDir)
// PURPOSE: Test the additive merge policy, scope restriction, and symlink containment

package merge_test

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/cloudai-x/cwkit/pkg/merge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file with parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestScope(t *testing.T) {
	assert.Equal(t, []string{"agents", "commands", "skills", "hooks"}, merge.Scope())
	assert.True(t, merge.InScope("agents"))
	assert.False(t, merge.InScope("ignored-dir"))

	// Mutating the returned slice must not affect the allowlist
	s := merge.Scope()
	s[0] = "mutated"
	assert.Equal(t, "agents", merge.Scope()[0])
}

func TestMerge_EmptyTarget(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "agents", "a.md"), "agent a")
	writeFile(t, filepath.Join(src, "skills", "x", "README.md"), "skill x")
	writeFile(t, filepath.Join(src, "ignored-dir", "y.txt"), "not for you")

	stats, err := merge.Merge(src, dst)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Added)
	assert.Equal(t, 0, stats.Skipped)
	assert.FileExists(t, filepath.Join(dst, "agents", "a.md"))
	assert.FileExists(t, filepath.Join(dst, "skills", "x", "README.md"))
	assert.NoDirExists(t, filepath.Join(dst, "ignored-dir"))
}

func TestMerge_ExistingFileIsSkippedAndUntouched(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "commands", "start.md"), "from bundle")
	writeFile(t, filepath.Join(dst, "commands", "start.md"), "mine, hands off")

	stats, err := merge.Merge(src, dst)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 1, stats.Skipped)

	content, err := os.ReadFile(filepath.Join(dst, "commands", "start.md"))
	require.NoError(t, err)
	assert.Equal(t, "mine, hands off", string(content))
}

func TestMerge_ExistingEntryOfDifferentKindWins(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	// Staged file collides with a pre-existing directory of the same name
	writeFile(t, filepath.Join(src, "agents", "helper"), "staged file")
	require.NoError(t, os.MkdirAll(filepath.Join(dst, "agents", "helper"), 0755))

	stats, err := merge.Merge(src, dst)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 1, stats.Skipped)
	assert.DirExists(t, filepath.Join(dst, "agents", "helper"))
}

func TestMerge_AddsAmongExistingSiblings(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "skills", "review", "SKILL.md"), "v1")
	writeFile(t, filepath.Join(src, "skills", "review", "extra.md"), "new sibling")
	writeFile(t, filepath.Join(dst, "skills", "review", "SKILL.md"), "customized")

	stats, err := merge.Merge(src, dst)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Skipped)

	content, err := os.ReadFile(filepath.Join(dst, "skills", "review", "SKILL.md"))
	require.NoError(t, err)
	assert.Equal(t, "customized", string(content))
	assert.FileExists(t, filepath.Join(dst, "skills", "review", "extra.md"))
}

func TestMerge_Idempotence(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "agents", "a.md"), "a")
	writeFile(t, filepath.Join(src, "agents", "sub", "b.md"), "b")
	writeFile(t, filepath.Join(src, "hooks", "pre.sh"), "#!/bin/sh")
	require.NoError(t, os.Symlink("a.md", filepath.Join(src, "agents", "alias.md")))

	first, err := merge.Merge(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Added)
	assert.Equal(t, 0, first.Skipped)

	second, err := merge.Merge(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Added)
	assert.Equal(t, 4, second.Skipped)
}

func TestMerge_SafeSymlinkIsRecreated(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "commands", "real.md"), "real")
	require.NoError(t, os.Symlink("real.md", filepath.Join(src, "commands", "link.md")))

	stats, err := merge.Merge(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Added)

	target, err := os.Readlink(filepath.Join(dst, "commands", "link.md"))
	require.NoError(t, err)
	assert.Equal(t, "real.md", target)
}

func TestMerge_EscapingSymlinkIsRejected(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(src, "hooks"), 0755))
	require.NoError(t, os.Symlink("../../../etc/passwd", filepath.Join(src, "hooks", "evil")))
	require.NoError(t, os.Symlink("/etc/passwd", filepath.Join(src, "hooks", "evil-abs")))

	stats, err := merge.Merge(src, dst)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 2, stats.Skipped)
	assert.NoFileExists(t, filepath.Join(dst, "hooks", "evil"))
	assert.NoFileExists(t, filepath.Join(dst, "hooks", "evil-abs"))
}

func TestMerge_AbsoluteSymlinkInsideRootIsAllowed(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(src, "hooks"), 0755))
	inside := filepath.Join(dst, "hooks", "shared.sh")
	require.NoError(t, os.Symlink(inside, filepath.Join(src, "hooks", "shared-link")))

	stats, err := merge.Merge(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)

	target, err := os.Readlink(filepath.Join(dst, "hooks", "shared-link"))
	require.NoError(t, err)
	assert.Equal(t, inside, target)
}

func TestMerge_ExistingSymlinkNeverReplaced(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(src, "agents"), 0755))
	require.NoError(t, os.Symlink("bundle-target", filepath.Join(src, "agents", "link")))
	require.NoError(t, os.MkdirAll(filepath.Join(dst, "agents"), 0755))
	require.NoError(t, os.Symlink("/somewhere/else", filepath.Join(dst, "agents", "link")))

	stats, err := merge.Merge(src, dst)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 1, stats.Skipped)

	target, err := os.Readlink(filepath.Join(dst, "agents", "link"))
	require.NoError(t, err)
	assert.Equal(t, "/somewhere/else", target)
}

func TestMerge_SymlinkToDirectoryIsALeaf(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "skills", "base", "SKILL.md"), "s")
	require.NoError(t, os.Symlink("base", filepath.Join(src, "skills", "alias")))

	stats, err := merge.Merge(src, dst)
	require.NoError(t, err)

	// base/SKILL.md plus the alias link itself; the link is never
	// descended into.
	assert.Equal(t, 2, stats.Added)

	info, err := os.Lstat(filepath.Join(dst, "skills", "alias"))
	require.NoError(t, err)
	assert.Equal(t, os.ModeSymlink, info.Mode()&os.ModeSymlink)
}

func TestMerge_SpecialFilesIgnored(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(src, "hooks"), 0755))
	if err := syscall.Mkfifo(filepath.Join(src, "hooks", "pipe"), 0644); err != nil {
		t.Skipf("cannot create fifo on this platform: %v", err)
	}
	writeFile(t, filepath.Join(src, "hooks", "real.sh"), "#!/bin/sh")

	stats, err := merge.Merge(src, dst)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 0, stats.Skipped)
	assert.NoFileExists(t, filepath.Join(dst, "hooks", "pipe"))
}

func TestMerge_MissingScopeDirsAreFine(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "only-junk", "x.txt"), "x")

	stats, err := merge.Merge(src, dst)
	require.NoError(t, err)
	assert.Equal(t, merge.Stats{}, stats)

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMerge_ScopeNameThatIsAFileIsIgnored(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	// A top-level "agents" regular file is not a mergeable directory
	writeFile(t, filepath.Join(src, "agents"), "not a directory")

	stats, err := merge.Merge(src, dst)
	require.NoError(t, err)
	assert.Equal(t, merge.Stats{}, stats)
	assert.NoFileExists(t, filepath.Join(dst, "agents"))
}

func TestMerge_PreservesFileMode(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	hookPath := filepath.Join(src, "hooks", "run.sh")
	writeFile(t, hookPath, "#!/bin/sh\n")
	require.NoError(t, os.Chmod(hookPath, 0755))

	_, err := merge.Merge(src, dst)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dst, "hooks", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}
