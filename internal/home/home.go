// Package home renders the site homepage: a hero header with a call to action,
// followed by the contributor cards.
//
// Rendering is a pure function of the site config. Templates are embedded and
// parsed once, so a render touches nothing but the writer it is given.
package home

import (
	"embed"
	"html/template"
	"io"

	"github.com/Shivam0504-hash/rcc-documentation/internal/model"
	"github.com/Shivam0504-hash/rcc-documentation/internal/theme"
)

//go:embed templates/*.gohtml
var pageFS embed.FS

var tmpl = template.Must(theme.New("home", pageFS, "templates/*.gohtml"))

const (
	Title    = "React Native Reusable Component"
	CTALabel = "Let's Start"
	// CTAHref is empty: the call to action has no destination yet.
	CTAHref = ""
)

// Header is the hero banner content.
type Header struct {
	Title    string
	CTALabel string
	CTAHref  string
}

// Page is the homepage view model.
type Page struct {
	Site         model.SiteConfig
	Header       Header
	Contributors []model.ContributorRecord
}

// DefaultContributors returns the contributors listed on the homepage.
func DefaultContributors() []model.ContributorRecord {
	john := model.ContributorRecord{Name: "John Doe", Email: "john.doe@example.com"}
	return []model.ContributorRecord{john, john, john}
}

// New builds the default homepage for site.
func New(site model.SiteConfig) Page {
	return Page{
		Site: site,
		Header: Header{
			Title:    Title,
			CTALabel: CTALabel,
			CTAHref:  CTAHref,
		},
		Contributors: DefaultContributors(),
	}
}

func (p Page) PageTitle() string {
	return "Hello from " + p.Site.Title
}

func (p Page) PageDescription() string {
	return p.Site.Description
}

// Render writes the full homepage document to w.
func (p Page) Render(w io.Writer) error {
	return tmpl.ExecuteTemplate(w, theme.LayoutTemplate, p)
}

// Render writes the default homepage for site to w.
func Render(w io.Writer, site model.SiteConfig) error {
	return New(site).Render(w)
}

// ContributorView writes a single contributor card.
func ContributorView(w io.Writer, name, email string) error {
	return tmpl.ExecuteTemplate(w, "contributor", model.ContributorRecord{Name: name, Email: email})
}
