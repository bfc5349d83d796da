// Package site builds the static documentation site: homepage, doc pages,
// theme assets and static files, followed by an internal link check.
package site

import (
	"bufio"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Shivam0504-hash/rcc-documentation/internal/config"
	"github.com/Shivam0504-hash/rcc-documentation/internal/docs"
	"github.com/Shivam0504-hash/rcc-documentation/internal/home"
	"github.com/Shivam0504-hash/rcc-documentation/internal/model"
	"github.com/Shivam0504-hash/rcc-documentation/internal/sidebar"
	"github.com/Shivam0504-hash/rcc-documentation/internal/theme"
)

//go:embed templates/*.gohtml
var pageFS embed.FS

const (
	homeOutput     = "index.html"
	notFoundOutput = "404.html"
)

// Result summarizes a finished build.
type Result struct {
	Pages       int
	Docs        int
	BrokenLinks []BrokenLink
	Duration    time.Duration
}

// Builder renders the site described by a Config into its output directory.
type Builder struct {
	cfg          config.Config
	loader       *docs.Loader
	docTmpl      *template.Template
	notFoundTmpl *template.Template
	logger       *slog.Logger
	concurrency  int
}

// Option customizes a Builder.
type Option func(*Builder)

// WithConcurrency bounds how many doc pages render at once.
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

func NewBuilder(cfg config.Config, logger *slog.Logger, opts ...Option) (*Builder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	docTmpl, err := theme.New("doc", pageFS, "templates/doc.gohtml")
	if err != nil {
		return nil, err
	}
	notFoundTmpl, err := theme.New("notfound", pageFS, "templates/notfound.gohtml")
	if err != nil {
		return nil, err
	}
	b := &Builder{
		cfg:          cfg,
		loader:       docs.NewLoader(logger),
		docTmpl:      docTmpl,
		notFoundTmpl: notFoundTmpl,
		logger:       logger,
		concurrency:  runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Build regenerates the whole output directory. Pages are rendered into a
// staging directory next to the output and swapped into place only when every
// step, including the link check, succeeds. A failed build leaves the previous
// output untouched.
func (b *Builder) Build(ctx context.Context) (res *Result, err error) {
	start := time.Now()
	cfg := b.cfg
	site := cfg.Site()
	b.logger.Info("starting build", "outputDir", cfg.OutputDir, "baseURL", cfg.BaseURL, "siteTitle", cfg.SiteTitle)

	out, err := outputPath(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	set, err := b.loader.Load(cfg.DocsDir)
	if err != nil {
		return nil, err
	}
	b.logger.Info("collected documents", "count", len(set))

	sidebars, err := b.loadSidebars()
	if err != nil {
		return nil, err
	}
	known := make(map[sidebar.DocumentReference]bool, len(set))
	for id := range set {
		known[sidebar.DocumentReference(id)] = true
	}
	if err := sidebar.Resolve(sidebars, known); err != nil {
		return nil, err
	}

	stage, err := b.stagingDir(out)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rmErr := os.RemoveAll(stage); rmErr != nil {
				b.logger.Warn("failed to remove staging directory", "path", stage, "error", rmErr)
			}
		}
	}()

	if err := b.copyStatic(stage); err != nil {
		return nil, err
	}
	if err := theme.WriteAssets(stage); err != nil {
		return nil, fmt.Errorf("failed to write theme assets: %w", err)
	}

	if err := writePage(filepath.Join(stage, homeOutput), func(w io.Writer) error {
		return home.Render(w, site)
	}); err != nil {
		return nil, fmt.Errorf("failed to render homepage: %w", err)
	}
	b.logger.Info("generated homepage", "path", filepath.Join(out, homeOutput))

	if err := b.renderDocs(ctx, stage, site, set, sidebars); err != nil {
		return nil, err
	}

	if err := writePage(filepath.Join(stage, notFoundOutput), func(w io.Writer) error {
		return b.notFoundTmpl.ExecuteTemplate(w, theme.LayoutTemplate, notFoundPage{Site: site})
	}); err != nil {
		return nil, fmt.Errorf("failed to render 404 page: %w", err)
	}

	res = &Result{Pages: len(set) + 2, Docs: len(set)}
	if err := b.checkLinks(stage, res); err != nil {
		return res, err
	}

	if err := b.publish(stage, out); err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	b.logger.Info("build completed", "pages", res.Pages, "duration", res.Duration)
	return res, nil
}

// outputPath cleans dir and refuses locations a swap would destroy.
func outputPath(dir string) (string, error) {
	out := filepath.Clean(dir)
	if out == "." || out == string(filepath.Separator) || filepath.Dir(out) == out {
		return "", fmt.Errorf("refusing to clean output directory %q", dir)
	}
	return out, nil
}

// stagingDir creates an empty sibling of out so the final rename stays on
// one filesystem.
func (b *Builder) stagingDir(out string) (string, error) {
	parent := filepath.Dir(out)
	if err := os.MkdirAll(parent, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory '%s': %w", parent, err)
	}
	stage, err := os.MkdirTemp(parent, "."+filepath.Base(out)+"-build-")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	if err := os.Chmod(stage, 0o755); err != nil {
		os.RemoveAll(stage)
		return "", fmt.Errorf("failed to set permissions on '%s': %w", stage, err)
	}
	b.logger.Debug("staging build", "path", stage)
	return stage, nil
}

// publish replaces out with stage. The previous output is moved aside first
// and removed once the new tree is in place.
func (b *Builder) publish(stage, out string) error {
	old := stage + ".old"
	hadOld := true
	if err := os.Rename(out, old); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to move previous output '%s': %w", out, err)
		}
		hadOld = false
	}
	if err := os.Rename(stage, out); err != nil {
		if hadOld {
			if restoreErr := os.Rename(old, out); restoreErr != nil {
				b.logger.Error("failed to restore previous output", "path", out, "error", restoreErr)
			}
		}
		return fmt.Errorf("failed to publish output directory '%s': %w", out, err)
	}
	if hadOld {
		if err := os.RemoveAll(old); err != nil {
			b.logger.Warn("failed to remove previous output", "path", old, "error", err)
		}
	}
	return nil
}

func (b *Builder) copyStatic(dst string) error {
	dir := b.cfg.StaticDir
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		b.logger.Info("static assets directory not found, skipping copy", "path", dir)
		return nil
	}
	if err := copyDirContents(dir, dst, b.logger); err != nil {
		return fmt.Errorf("failed to copy static assets: %w", err)
	}
	b.logger.Info("static assets copied", "from", dir, "to", b.cfg.OutputDir)
	return nil
}

func (b *Builder) loadSidebars() (sidebar.Sidebars, error) {
	if b.cfg.SidebarFile == "" {
		return sidebar.Default(), nil
	}
	b.logger.Info("loading sidebar file", "path", b.cfg.SidebarFile)
	return sidebar.Load(b.cfg.SidebarFile)
}

func (b *Builder) renderDocs(ctx context.Context, dir string, site model.SiteConfig, set docs.Set, sidebars sidebar.Sidebars) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for _, id := range set.IDs() {
		doc := set[id]
		data := pageData(site, doc, set, sidebars)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := pagePath(dir, doc.Permalink)
			if err != nil {
				return err
			}
			if err := writePage(out, func(w io.Writer) error {
				return b.docTmpl.ExecuteTemplate(w, theme.LayoutTemplate, data)
			}); err != nil {
				return fmt.Errorf("failed to render doc '%s': %w", doc.ID, err)
			}
			b.logger.Debug("generated doc", "id", doc.ID, "path", out)
			return nil
		})
	}
	return g.Wait()
}

// pagePath maps a permalink to its index.html under dir, rejecting
// permalinks that resolve outside of it.
func pagePath(dir, permalink string) (string, error) {
	out := filepath.Join(dir, filepath.FromSlash(permalink), "index.html")
	rel, err := filepath.Rel(dir, out)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("permalink %q resolves outside the output directory", permalink)
	}
	return out, nil
}

// writePage creates path and its parents and streams render into it.
func writePage(path string, render func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file '%s': %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := render(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type notFoundPage struct {
	Site model.SiteConfig
}

func (p notFoundPage) PageTitle() string { return "Page Not Found | " + p.Site.Title }

func (p notFoundPage) PageDescription() string { return p.Site.Description }
