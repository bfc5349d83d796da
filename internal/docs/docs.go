// Package docs loads the markdown documents that back the sidebar.
package docs

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Shivam0504-hash/rcc-documentation/internal/model"
)

var (
	// ErrDuplicateID is returned when two files resolve to the same doc ID.
	ErrDuplicateID = errors.New("duplicate document id")
	// ErrDuplicatePermalink is returned when two docs would be published at the same URL.
	ErrDuplicatePermalink = errors.New("duplicate document permalink")
	// ErrInvalidID is returned for a frontmatter id that is not a bare slug.
	ErrInvalidID = errors.New("invalid document id")
)

// PermalinkPrefix is the route prefix every doc is published under.
const PermalinkPrefix = "/docs/"

// Set is the collection of loaded documents keyed by ID.
type Set map[string]*model.Document

// IDs returns the document IDs in sorted order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Loader turns a directory of markdown files into documents.
type Loader struct {
	md     goldmark.Markdown
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		logger: logger,
	}
}

// Load walks dir for .md files.
func (l *Loader) Load(dir string) (Set, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("docs directory '%s' not found: %w", dir, err)
	}

	set := make(Set)
	byPermalink := make(map[string]*model.Document)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", p, walkErr)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", p, err)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read file '%s': %w", p, err)
		}

		doc, err := l.Parse(filepath.ToSlash(rel), data)
		if err != nil {
			return fmt.Errorf("failed to load '%s': %w", p, err)
		}
		doc.SourcePath = p

		if prev, ok := set[doc.ID]; ok {
			return fmt.Errorf("%w: %q from %s and %s", ErrDuplicateID, doc.ID, prev.SourcePath, p)
		}
		if prev, ok := byPermalink[doc.Permalink]; ok {
			return fmt.Errorf("%w: %q from %s and %s", ErrDuplicatePermalink, doc.Permalink, prev.SourcePath, p)
		}
		set[doc.ID] = doc
		byPermalink[doc.Permalink] = doc
		l.logger.Debug("loaded document", "id", doc.ID, "path", p, "permalink", doc.Permalink)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Parse builds a document from the contents of a markdown file at the
// slash-separated path rel, relative to the docs directory.
func (l *Loader) Parse(rel string, data []byte) (*model.Document, error) {
	var fm map[string]interface{}
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		l.logger.Warn("could not parse frontmatter, treating as pure markdown", "path", rel, "error", err)
		body = data
		fm = nil
	}
	if fm == nil {
		fm = make(map[string]interface{})
	}

	var buf bytes.Buffer
	if err := l.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	override := stringField(fm, "id")
	if err := validateOverride(override); err != nil {
		return nil, err
	}
	id := ID(rel, override)
	doc := &model.Document{
		ID:           id,
		Title:        stringField(fm, "title"),
		SidebarLabel: stringField(fm, "sidebar_label"),
		Description:  stringField(fm, "description"),
		Permalink:    Permalink(id),
		ContentHTML:  template.HTML(buf.String()),
		Frontmatter:  fm,
	}
	if doc.Title == "" {
		doc.Title = Title(rel)
	}
	return doc, nil
}

// ID derives a doc ID from a slash-separated relative path. A non-empty
// override replaces the last path segment.
func ID(rel, override string) string {
	id := strings.TrimSuffix(rel, path.Ext(rel))
	if override != "" {
		dir := path.Dir(id)
		id = override
		if dir != "." {
			id = dir + "/" + override
		}
	}
	return strings.ToLower(strings.Trim(id, "/"))
}

// validateOverride accepts an empty override or a single path segment.
func validateOverride(override string) error {
	if override == "" {
		return nil
	}
	if override == "." || override == ".." || strings.ContainsAny(override, `/\`) {
		return fmt.Errorf("%w: %q must be a single path segment", ErrInvalidID, override)
	}
	return nil
}

// Permalink is the site-relative URL of the doc with the given ID.
// A trailing readme or index segment maps to its directory.
func Permalink(id string) string {
	dir, base := path.Split(id)
	if isIndexName(base) {
		id = strings.TrimSuffix(dir, "/")
	}
	if id == "" {
		return PermalinkPrefix
	}
	return PermalinkPrefix + id + "/"
}

// Title derives a display title from a relative file path.
func Title(rel string) string {
	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	if isIndexName(name) {
		if dir := path.Base(path.Dir(rel)); dir != "." && dir != "/" {
			name = dir
		}
	}
	name = strings.ReplaceAll(strings.ReplaceAll(name, "-", " "), "_", " ")
	return cases.Title(language.English).String(name)
}

func isIndexName(name string) bool {
	switch strings.ToLower(name) {
	case "readme", "index":
		return true
	}
	return false
}

func stringField(fm map[string]interface{}, key string) string {
	if v, ok := fm[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
