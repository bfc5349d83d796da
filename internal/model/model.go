package model

import (
	"html/template"
)

// SiteConfig is the read-only site metadata handed to page renderers.
type SiteConfig struct {
	Title       string
	Description string
	BaseURL     string
}

// ContributorRecord is a name/email pair shown on the homepage.
type ContributorRecord struct {
	Name  string
	Email string
}

// Document represents a single markdown doc loaded from the docs directory.
type Document struct {
	ID           string
	Title        string
	SidebarLabel string
	Description  string
	SourcePath   string
	Permalink    string
	ContentHTML  template.HTML
	Frontmatter  map[string]interface{}
}

// Label is the text used for the document in navigation.
func (d *Document) Label() string {
	if d.SidebarLabel != "" {
		return d.SidebarLabel
	}
	return d.Title
}
