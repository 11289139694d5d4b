package hunkgrep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts the root command's flags back to their defaults so each
// test parses from a clean slate.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset()
	t.Cleanup(reset)
}

func runRoot(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(t)
	rootCmd.SetArgs(rewriteArgs(args))
	return rootCmd.Execute()
}

func TestRewriteArgs(t *testing.T) {
	got := rewriteArgs([]string{"-a", "-+=newName", "--=oldName", "-+=", "--", "change.diff"})
	assert.Equal(t, []string{"-a", "--added=newName", "--removed=oldName", "-+=", "--", "change.diff"}, got)
}

func TestBuildConfig_FlagsOverrideFile(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "hunkgrep.yaml")
	require.NoError(t, os.WriteFile(path, []byte("added: fromFile\nremoved: fromFile\nengine: backtrack\n"), 0644))

	require.NoError(t, rootCmd.ParseFlags(rewriteArgs([]string{"--all", "--=fromFlag", "--config", path})))

	c, err := buildConfig(rootCmd, []string{"change.diff"})
	require.NoError(t, err)
	assert.Equal(t, "all", c.Mode)
	assert.Equal(t, "fromFile", c.Added)
	assert.Equal(t, "fromFlag", c.Removed)
	assert.Equal(t, "backtrack", c.Engine, "unset --engine keeps the file value")
	assert.Equal(t, "change.diff", c.InputPath)
	assert.NoError(t, c.Validate())
}

func TestBuildConfig_LastModeFlagWins(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-1", "-a"}, "all"},
		{[]string{"-a", "-1"}, "one"},
		{[]string{"--mode", "all", "--one"}, "one"},
		{[]string{"--one", "--mode", "all"}, "all"},
		{[]string{"--all=false"}, "one"},
	}
	for _, tt := range tests {
		resetFlags(t)
		require.NoError(t, rootCmd.ParseFlags(tt.args))

		c, err := buildConfig(rootCmd, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want, c.Mode, "args %v", tt.args)
	}
}

func TestRootCmd_Execute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "change.diff")
	require.NoError(t, os.WriteFile(path, []byte(twoHunks), 0644))

	t.Run("no pattern", func(t *testing.T) {
		err := runRoot(t, path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoPattern)
		assert.Contains(t, err.Error(), "failed to initialize application")
	})

	t.Run("both mode flags", func(t *testing.T) {
		assert.NoError(t, runRoot(t, "-1", "-a", "-+=nothingMatches", "--log-level", "disabled", path))
	})

	t.Run("missing input file", func(t *testing.T) {
		err := runRoot(t, "--=x", filepath.Join(t.TempDir(), "missing.diff"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported completion shell", func(t *testing.T) {
		err := runRoot(t, "--completion", "tcsh")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported shell")
	})

	t.Run("too many args", func(t *testing.T) {
		assert.Error(t, runRoot(t, "--=x", "a.diff", "b.diff"))
	})
}
