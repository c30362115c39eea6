package infrastructure

import "encoding/xml"

// VLANNetwork is a datacenter network. Its addresses are reached through
// the "ips" link.
type VLANNetwork struct {
	XMLName xml.Name `xml:"network"`
	Resource
	ID             int         `xml:"id,omitempty"`
	Name           string      `xml:"name"`
	Tag            int         `xml:"tag,omitempty"`
	Gateway        string      `xml:"gateway"`
	Address        string      `xml:"address"`
	Mask           int         `xml:"mask"`
	PrimaryDNS     string      `xml:"primaryDNS,omitempty"`
	SecondaryDNS   string      `xml:"secondaryDNS,omitempty"`
	SufixDNS       string      `xml:"sufixDNS,omitempty"`
	DefaultNetwork bool        `xml:"defaultNetwork"`
	Type           NetworkType `xml:"type"`
}

// PathValue fills {datacenter} and {network}.
func (n *VLANNetwork) PathValue(name string) (string, bool) {
	switch name {
	case "datacenter":
		return n.linkID("datacenter")
	case "network":
		return idValue(n.ID)
	}
	return "", false
}

// VLANNetworks is a collection of networks.
type VLANNetworks struct {
	XMLName xml.Name `xml:"networks"`
	Resource
	Items []VLANNetwork `xml:"network"`
}

// TagAvailability reports whether a VLAN tag can be used.
type TagAvailability struct {
	XMLName xml.Name `xml:"vlanTagAvailability"`
	Resource
	Available string `xml:"available"`
	Message   string `xml:"message,omitempty"`
}

// IsAvailable reports whether the tag is free.
func (t *TagAvailability) IsAvailable() bool { return t.Available == "AVAILABLE" }

// IPAddress holds the fields shared by every address kind.
type IPAddress struct {
	Resource
	ID          int    `xml:"id,omitempty"`
	IP          string `xml:"ip"`
	MAC         string `xml:"mac,omitempty"`
	Name        string `xml:"name,omitempty"`
	NetworkName string `xml:"networkName,omitempty"`
	Quarantine  bool   `xml:"quarantine"`
	Available   bool   `xml:"available"`
}

// PublicIP is an address of a public network.
type PublicIP struct {
	XMLName xml.Name `xml:"publicip"`
	IPAddress
}

// ExternalIP is an address of an external network.
type ExternalIP struct {
	XMLName xml.Name `xml:"externalip"`
	IPAddress
}

// UnmanagedIP is an address of an unmanaged network.
type UnmanagedIP struct {
	XMLName xml.Name `xml:"unmanagedip"`
	IPAddress
}
