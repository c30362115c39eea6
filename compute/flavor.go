package compute

// Link points at a related resource.
type Link struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

// Flavor is a hardware profile servers are created from. The summary
// listing fills only ID, Name and Links.
type Flavor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	RAM   int    `json:"ram,omitempty"`
	Disk  int    `json:"disk,omitempty"`
	VCPUs int    `json:"vcpus,omitempty"`
	Links []Link `json:"links,omitempty"`
}

// Link returns the href of the link with the given relation.
func (f *Flavor) Link(rel string) (string, bool) {
	for _, l := range f.Links {
		if l.Rel == rel {
			return l.Href, true
		}
	}
	return "", false
}

type flavorList struct {
	Flavors []Flavor `json:"flavors"`
}

type flavorDocument struct {
	Flavor Flavor `json:"flavor"`
}
