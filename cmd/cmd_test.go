package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and restores flag state so
// tests stay independent.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		for _, c := range append(RootCmd.Commands(), RootCmd) {
			resetFlags(c)
		}
		flagConfigPath = ""
		flagVerbose = false
		flagSilent = false
	})

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestRunCommandFlags(t *testing.T) {
	flags := []string{
		"output", "include", "exclude", "max-file-size", "max-workers",
		"follow-symlinks", "ignore-case", "fail-empty", "dry-run",
		"no-header", "no-tree",
	}
	for _, name := range flags {
		assert.NotNil(t, runCmd.Flags().Lookup(name), "flag %s should exist", name)
	}

	assert.Equal(t, "false", runCmd.Flags().Lookup("dry-run").DefValue)
	assert.Equal(t, "0", runCmd.Flags().Lookup("max-workers").DefValue)
}

func TestRunCommandEndToEnd(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.py"), []byte("print('hi')\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.bin"), []byte{0x00, 0x01}, 0644))

	out, err := execute(t, "run", root, "-o", "bundle.md", "-i", "*.py", "-i", "*.bin")
	require.NoError(t, err)
	assert.Contains(t, out, "Aggregated 1 files into")

	data, err := os.ReadFile(filepath.Join(root, "bundle.md"))
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, "## File: `main.py`")
	assert.Contains(t, doc, "```python")
	assert.Contains(t, doc, "- `blob.bin`: binary file, content not included")
}

func TestRunCommandDryRun(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0644))

	out, err := execute(t, "run", root, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "--dry-run enabled")

	_, statErr := os.Stat(filepath.Join(root, "codecat_output.md"))
	assert.True(t, os.IsNotExist(statErr), "dry-run must not write the document")
}

func TestRunCommandFailEmpty(t *testing.T) {
	root := t.TempDir()

	_, err := execute(t, "run", root, "--fail-empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files to aggregate")
}

func TestRunCommandMissingRoot(t *testing.T) {
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestStatsCommand(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("pass\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.py"), []byte("x = 1\ny = 2\n"), 0644))

	out, err := execute(t, "stats", root)
	require.NoError(t, err)

	assert.Contains(t, out, "File Type Statistics")
	assert.Contains(t, out, "python")
	assert.Contains(t, out, "Scan Summary")

	_, statErr := os.Stat(filepath.Join(root, "codecat_output.md"))
	assert.True(t, os.IsNotExist(statErr), "stats mode produces no document")
}

func TestGenerateConfigCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "generate-config", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated config file")

	_, err = execute(t, "generate-config", "-o", dir)
	require.Error(t, err, "existing config is not overwritten without --force")

	_, err = execute(t, "generate-config", "-o", dir, "--force")
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "codecat version")

	out, err = execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}
