package site

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/Shivam0504-hash/rcc-documentation/internal/config"
)

// ErrBrokenLinks is returned when internal links point at missing pages
// and the broken link policy is "throw".
var ErrBrokenLinks = errors.New("broken links found")

// BrokenLink is an internal link whose target was not generated.
type BrokenLink struct {
	Page string
	Href string
}

func (l BrokenLink) String() string {
	return fmt.Sprintf("%s -> %s", l.Page, l.Href)
}

func (b *Builder) checkLinks(dir string, res *Result) error {
	if b.cfg.OnBrokenLinks == config.BrokenLinksIgnore {
		return nil
	}

	broken, err := FindBrokenLinks(dir, b.cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to check links: %w", err)
	}
	res.BrokenLinks = broken
	if len(broken) == 0 {
		return nil
	}

	if b.cfg.OnBrokenLinks == config.BrokenLinksWarn {
		for _, l := range broken {
			b.logger.Warn("broken link", "page", l.Page, "href", l.Href)
		}
		return nil
	}

	lines := make([]string, 0, len(broken))
	for _, l := range broken {
		lines = append(lines, l.String())
	}
	return fmt.Errorf("%w: %s", ErrBrokenLinks, strings.Join(lines, ", "))
}

// FindBrokenLinks parses every HTML file under root and reports internal
// links that do not resolve to a generated file. baseURL is the URL path
// root is published under.
func FindBrokenLinks(root, baseURL string) ([]BrokenLink, error) {
	var broken []BrokenLink
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		page := pageURL(baseURL, filepath.ToSlash(rel))

		hrefs, err := extractLinks(p)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}
		for _, href := range hrefs {
			target, internal := resolveLink(page, href)
			if !internal {
				continue
			}
			if !exists(root, baseURL, target) {
				broken = append(broken, BrokenLink{Page: page, Href: href})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(broken, func(i, j int) bool {
		if broken[i].Page != broken[j].Page {
			return broken[i].Page < broken[j].Page
		}
		return broken[i].Href < broken[j].Href
	})
	return broken, nil
}

func extractLinks(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, err
	}

	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "a" || n.Data == "link") {
			for _, a := range n.Attr {
				if a.Key == "href" {
					hrefs = append(hrefs, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return hrefs, nil
}

// pageURL is the URL path a generated file is served at.
func pageURL(baseURL, rel string) string {
	u := "/" + strings.TrimPrefix(strings.TrimSuffix(baseURL, "/")+"/"+rel, "/")
	if strings.HasSuffix(u, "/index.html") {
		u = strings.TrimSuffix(u, "index.html")
	}
	return u
}

// resolveLink returns the absolute URL path href points to from page.
// Empty, fragment-only, external and non-http links are not internal.
func resolveLink(page, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if u.Path == "" {
		return "", false
	}
	if strings.HasPrefix(u.Path, "/") {
		return u.Path, true
	}
	dir := page
	if !strings.HasSuffix(dir, "/") {
		dir = path.Dir(dir) + "/"
	}
	resolved := path.Join(dir, u.Path)
	if strings.HasSuffix(u.Path, "/") {
		resolved += "/"
	}
	return resolved, true
}

func exists(root, baseURL, target string) bool {
	base := "/" + strings.Trim(baseURL, "/")
	if base != "/" {
		if target != base && !strings.HasPrefix(target, base+"/") {
			return false
		}
		target = strings.TrimPrefix(target, base)
	}
	rel := filepath.FromSlash(strings.TrimPrefix(target, "/"))
	candidate := filepath.Join(root, rel)

	if strings.HasSuffix(target, "/") || rel == "" {
		return isFile(filepath.Join(candidate, "index.html"))
	}
	return isFile(candidate) || isFile(filepath.Join(candidate, "index.html"))
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
