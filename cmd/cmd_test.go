package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		cfgFile = ""
		sidebarFormat = "yaml"
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, root string, extra string) string {
	t.Helper()
	path := filepath.Join(root, "config.yaml")
	content := fmt.Sprintf("docsDir: %s\nstaticDir: %s\noutputDir: %s\n%s",
		filepath.Join(root, "docs"), filepath.Join(root, "static"), filepath.Join(root, "build"), extra)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSidebarCommand(t *testing.T) {
	out, err := execute(t, "sidebar")
	require.NoError(t, err)
	assert.Contains(t, out, "tutorialSidebar:")
	assert.Contains(t, out, "label: RCC")
	assert.Contains(t, out, "- calander/readme")
}

func TestSidebarCommandJSON(t *testing.T) {
	out, err := execute(t, "sidebar", "--format", "json")
	require.NoError(t, err)

	var decoded map[string][]struct {
		Type  string   `json:"type"`
		Label string   `json:"label"`
		Items []string `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded["tutorialSidebar"], 1)
	assert.Equal(t, "category", decoded["tutorialSidebar"][0].Type)
	assert.Equal(t, []string{
		"components/readme",
		"typography/readme",
		"navigation/readme",
		"features/readme",
		"calander/readme",
	}, decoded["tutorialSidebar"][0].Items)
}

func TestBuildCommand(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"components", "typography", "navigation", "features", "calander"} {
		p := filepath.Join(root, "docs", dir, "readme.md")
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("# "+dir+"\n"), 0o644))
	}
	cfg := writeConfig(t, root, "siteTitle: Test Docs\n")

	out, err := execute(t, "build", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 7 pages (5 docs)")
	assert.FileExists(t, filepath.Join(root, "build", "index.html"))
	assert.Equal(t, "Test Docs", appConfig.SiteTitle)
}

func TestBuildCommandMissingDocs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	cfg := writeConfig(t, root, "")

	_, err := execute(t, "build", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "components/readme")
}

func TestInvalidConfig(t *testing.T) {
	root := t.TempDir()
	cfg := writeConfig(t, root, "onBrokenLinks: explode\n")

	_, err := execute(t, "sidebar", "--config", cfg)
	assert.Error(t, err)
}

func TestMissingExplicitConfig(t *testing.T) {
	_, err := execute(t, "sidebar", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(&buf, "debug", "json")
	require.NoError(t, err)
	l.Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = newLogger(&buf, "loud", "text")
	assert.Error(t, err)

	_, err = newLogger(&buf, "info", "xml")
	assert.Error(t, err)
}
