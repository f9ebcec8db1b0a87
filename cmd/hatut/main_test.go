package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	w.Close()
	os.Stdout = old
	return <-outC
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores flag defaults, which otherwise leak between executions.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(resetFlag)
	cmd.PersistentFlags().VisitAll(resetFlag)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func resetFlag(f *pflag.Flag) {
	if f.Changed {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
}

// isolate points HOME at a temp dir so no real config or catalog is touched.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(home)
	return home
}

func TestVersionCommand(t *testing.T) {
	out := captureStdout(t, func() {
		versionCmd.Run(nil, nil)
	})

	assert.Contains(t, out, "hatut dev")
	assert.Contains(t, out, "Story reader")
	assert.Contains(t, out, "github.com/pders01/hatut")
}

func TestGenerateConfigCommand(t *testing.T) {
	home := isolate(t)
	configFile := filepath.Join(home, ".config", "hatut", "config.toml")

	out := captureStdout(t, func() {
		configGenCmd.Run(configGenCmd, nil)
	})

	assert.FileExists(t, configFile)
	assert.Contains(t, out, "Generated default configuration at:")
}

func TestConfigShowCommand(t *testing.T) {
	isolate(t)
	t.Setenv("HATUT_SOURCE_MODE", "http")

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[source]")
	assert.Regexp(t, `mode = ['"]http['"]`, out)
	assert.Regexp(t, `refresh_interval = ['"]5s['"]`, out)
}

func TestCatalogCommands(t *testing.T) {
	home := isolate(t)
	db := filepath.Join(home, "catalog.db")

	payload := filepath.Join(home, "reef.json")
	require.NoError(t, os.WriteFile(payload, []byte(`{
		"201": {"title": "Reef sharks at dawn", "author": "Coral Reefson"},
		"202": {"title": "Counting fish", "author": "Finn Scales"}
	}`), 0o644))

	out, err := execute(t, "catalog", "import", "Reef", payload, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, `Imported 2 stories as "reef"`)

	out, err = execute(t, "catalog", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "reef")
	assert.Contains(t, out, "2 stories")

	out, err = execute(t, "catalog", "search", "sharks", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "201")
	assert.NotContains(t, out, "202")

	out, err = execute(t, "catalog", "search", "kelp", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No results")
}

func TestCatalogImport_Malformed(t *testing.T) {
	home := isolate(t)
	payload := filepath.Join(home, "bad.json")
	require.NoError(t, os.WriteFile(payload, []byte(`["not", "an", "object"]`), 0o644))

	_, err := execute(t, "catalog", "import", "ocean", payload, "--db", filepath.Join(home, "catalog.db"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "malformed"), err.Error())
}

func TestRootCommand_RejectsUnknownSource(t *testing.T) {
	isolate(t)
	_, err := execute(t, "--quiet", "--source", "carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source mode")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType("ocean.json"))
	assert.Equal(t, "application/rss+xml", contentType("feed.XML"))
	assert.Equal(t, "application/atom+xml", contentType("feed.atom"))
}
