package theme

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"/", "", "/"},
		{"/", "/docs/components/", "/docs/components/"},
		{"/rcc/", "docs/components/", "/rcc/docs/components/"},
		{"/rcc", "/assets/css/styles.css", "/rcc/assets/css/styles.css"},
		{"", "", "/"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, URL(tc.base, tc.path), "URL(%q, %q)", tc.base, tc.path)
	}
}

func TestMailto(t *testing.T) {
	assert.Equal(t, "mailto:john.doe@example.com", string(Mailto("john.doe@example.com")))
}

func TestNewRequiresContent(t *testing.T) {
	pages := fstest.MapFS{
		"page.gohtml": {Data: []byte(`{{define "content"}}<p>hi</p>{{end}}`)},
	}
	tmpl, err := New("test", pages, "page.gohtml")
	require.NoError(t, err)
	assert.NotNil(t, tmpl.Lookup(LayoutTemplate))
	assert.NotNil(t, tmpl.Lookup("content"))
}

func TestWriteAssets(t *testing.T) {
	dst := t.TempDir()
	require.NoError(t, WriteAssets(dst))

	data, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(StylesheetPath)))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".hero__title")
}
