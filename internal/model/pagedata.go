package model

import "strings"

// NavLink is a rendered link to a document.
type NavLink struct {
	Label  string
	Href   string
	Active bool
}

// NavCategory is a rendered sidebar category.
type NavCategory struct {
	Label string
	Items []NavLink
	Open  bool
}

// PageData is the view model of a rendered doc page.
type PageData struct {
	Site     SiteConfig
	Doc      *Document
	Sidebar  []NavCategory
	Previous *NavLink
	Next     *NavLink
}

func (p PageData) PageTitle() string {
	if p.Doc == nil || p.Doc.Title == "" {
		return p.Site.Title
	}
	return p.Doc.Title + " | " + p.Site.Title
}

func (p PageData) PageDescription() string {
	if p.Doc != nil && p.Doc.Description != "" {
		return p.Doc.Description
	}
	return p.Site.Description
}

// ShowTitle reports whether the layout should print the doc title because
// the rendered markdown does not open with its own top-level heading.
func (p PageData) ShowTitle() bool {
	if p.Doc == nil {
		return false
	}
	return !strings.HasPrefix(strings.TrimSpace(string(p.Doc.ContentHTML)), "<h1")
}
