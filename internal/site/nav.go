package site

import (
	"github.com/Shivam0504-hash/rcc-documentation/internal/docs"
	"github.com/Shivam0504-hash/rcc-documentation/internal/model"
	"github.com/Shivam0504-hash/rcc-documentation/internal/sidebar"
	"github.com/Shivam0504-hash/rcc-documentation/internal/theme"
)

// pageData assembles the view model of doc, including the sidebar it
// belongs to and its neighbours in that sidebar.
func pageData(site model.SiteConfig, doc *model.Document, set docs.Set, sidebars sidebar.Sidebars) model.PageData {
	data := model.PageData{Site: site, Doc: doc}

	current := sidebar.DocumentReference(doc.ID)
	name, ok := sidebars.Find(current)
	if !ok {
		return data
	}
	nodes := sidebars[name]

	for _, n := range nodes {
		cat := model.NavCategory{}
		if c, ok := n.(sidebar.Category); ok {
			cat.Label = c.Label
		}
		for _, ref := range n.References() {
			link := navLink(site, set, ref)
			if link == nil {
				continue
			}
			if ref == current {
				link.Active = true
				cat.Open = true
			}
			cat.Items = append(cat.Items, *link)
		}
		data.Sidebar = append(data.Sidebar, cat)
	}

	prev, next, _ := sidebar.Neighbors(nodes, current)
	data.Previous = navLink(site, set, prev)
	data.Next = navLink(site, set, next)
	return data
}

func navLink(site model.SiteConfig, set docs.Set, ref sidebar.DocumentReference) *model.NavLink {
	if ref == "" {
		return nil
	}
	doc, ok := set[string(ref)]
	if !ok {
		return nil
	}
	return &model.NavLink{
		Label: doc.Label(),
		Href:  theme.URL(site.BaseURL, doc.Permalink),
	}
}
