package infrastructure

import (
	"strconv"

	"github.com/kbukum/restwire/util"
)

// MediaType returns the vendor XML media type of an entity name.
func MediaType(name string) string {
	return "application/vnd.abiquo." + name + "+xml"
}

// Link is a hypermedia link carried by an entity.
type Link struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr,omitempty"`
}

// Resource holds the links of an entity. Embedding it makes the entity a
// link source for endpoint bindings.
type Resource struct {
	Links []Link `xml:"link"`
}

// Link returns the href of the first link with relation rel.
func (r Resource) Link(rel string) (string, bool) {
	for _, l := range r.Links {
		if l.Rel == rel {
			return l.Href, true
		}
	}
	return "", false
}

// AddLink appends a link and returns the receiver for chaining.
func (r *Resource) AddLink(rel, href string) *Resource {
	r.Links = append(r.Links, Link{Rel: rel, Href: href})
	return r
}

// linkID returns the last path segment of the rel link, e.g. "1" for
// ".../datacenters/1".
func (r Resource) linkID(rel string) (string, bool) {
	href, ok := r.Link(rel)
	if !ok {
		return "", false
	}
	return util.LastSegment(href)
}

// idValue renders a numeric id, treating zero as unset.
func idValue(id int) (string, bool) {
	if id == 0 {
		return "", false
	}
	return strconv.Itoa(id), true
}
