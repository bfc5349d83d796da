// Package theme holds the page layout shared by every generated page.
package theme

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed templates/*.gohtml assets
var files embed.FS

// LayoutTemplate is the name of the template pages execute.
const LayoutTemplate = "layout"

// StylesheetPath is where the theme stylesheet lives relative to the site root.
const StylesheetPath = "assets/css/styles.css"

// Funcs returns the template functions available to layouts and pages.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"url":    URL,
		"mailto": Mailto,
	}
}

// URL joins a site base URL and a site-relative path.
func URL(base, p string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(p, "/")
}

// Mailto builds a mailto: link target for address.
func Mailto(address string) template.URL {
	return template.URL("mailto:" + address)
}

// New parses the layout plus the page templates matched by patterns in pages.
// Pages must define a "content" template.
func New(name string, pages fs.FS, patterns ...string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(Funcs()).ParseFS(files, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if len(patterns) == 0 {
		return tmpl, nil
	}
	tmpl, err = tmpl.ParseFS(pages, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return tmpl, nil
}

// WriteAssets copies the stylesheet and other layout assets under dst,
// keeping their site-relative paths.
func WriteAssets(dst string) error {
	return fs.WalkDir(files, "assets", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, os.ModePerm)
		}
		data, err := files.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read theme asset %s: %w", p, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write theme asset %s: %w", target, err)
		}
		return nil
	})
}
