// cmd/cwkit/commands/commands_test.go
// TEST TYPE: Integration Test (command wiring, no network)
// DEPENDENCIES: Filesystem (t.TempDir)
// PURPOSE: Test CLI wiring, flag handling, and fail-fast validation

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudai-x/cwkit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with the given args and returns
// its combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CWKIT_CONFIG_DIR", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCmd_NoArgsShowsHelpAndFails(t *testing.T) {
	out, err := runCommand(t)
	require.Error(t, err)
	assert.Contains(t, out, "cwkit")
	assert.Contains(t, out, "install")
}

func TestVersionCmd(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cwkit version")
	assert.Contains(t, out, "commit:")
}

func TestCompletionCmd(t *testing.T) {
	out, err := runCommand(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "cwkit")
}

func TestCompletionCmd_RejectsUnknownShell(t *testing.T) {
	_, err := runCommand(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestInstallCmd_RejectsInvalidLocatorBeforeAnyIO(t *testing.T) {
	target := filepath.Join(t.TempDir(), ".claude")

	_, err := runCommand(t, "install", "evil/../../etc", "--target", target)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLocatorInvalid))

	// Fail-fast means not even the target directory is created
	assert.NoDirExists(t, target)
}

func TestInstallCmd_RejectsExtraArgs(t *testing.T) {
	_, err := runCommand(t, "install", "a/b", "c/d")
	require.Error(t, err)
}

func TestStatusCmd_EmptyTarget(t *testing.T) {
	target := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(target, "agents"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "agents", "a.md"), []byte("a"), 0644))

	out, err := runCommand(t, "status", "--target", target)
	require.NoError(t, err)
	assert.Contains(t, out, "agents")
	assert.Contains(t, out, "1")
}

func TestStatusCmd_MissingTargetIsZeroes(t *testing.T) {
	out, err := runCommand(t, "status", "--target", filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Contains(t, out, "agents")
	assert.Contains(t, out, "0")
}

func TestRenderMarkdown_FallsBackToRawOnGarbageIsStillText(t *testing.T) {
	// glamour accepts arbitrary text; the fallback path just must not panic
	out := renderMarkdown("# Title\n\nbody")
	assert.NotEmpty(t, out)
}
