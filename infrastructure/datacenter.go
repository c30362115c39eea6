package infrastructure

import "encoding/xml"

// Datacenter is a physical location grouping racks, storage and networks.
type Datacenter struct {
	XMLName xml.Name `xml:"datacenter"`
	Resource
	ID       int    `xml:"id,omitempty"`
	Name     string `xml:"name"`
	Location string `xml:"location"`
}

// PathValue fills {datacenter}.
func (d *Datacenter) PathValue(name string) (string, bool) {
	if name == "datacenter" {
		return idValue(d.ID)
	}
	return "", false
}

// Datacenters is a collection of datacenters.
type Datacenters struct {
	XMLName xml.Name `xml:"datacenters"`
	Resource
	Items []Datacenter `xml:"datacenter"`
}

// DatacenterLimits are the resource limits an enterprise has in one
// datacenter.
type DatacenterLimits struct {
	XMLName xml.Name `xml:"limit"`
	Resource
	ID            int   `xml:"id,omitempty"`
	CPUSoft       int   `xml:"cpuSoft"`
	CPUHard       int   `xml:"cpuHard"`
	RAMSoft       int   `xml:"ramSoft"`
	RAMHard       int   `xml:"ramHard"`
	HDSoft        int64 `xml:"hdSoft"`
	HDHard        int64 `xml:"hdHard"`
	StorageSoft   int64 `xml:"storageSoft"`
	StorageHard   int64 `xml:"storageHard"`
	VLANsSoft     int   `xml:"vlansSoft"`
	VLANsHard     int   `xml:"vlansHard"`
	PublicIPsSoft int   `xml:"publicIpsSoft"`
	PublicIPsHard int   `xml:"publicIpsHard"`
}

// DatacentersLimits is a collection of limits.
type DatacentersLimits struct {
	XMLName xml.Name `xml:"limits"`
	Resource
	Items []DatacenterLimits `xml:"limit"`
}

// HypervisorTypes lists the hypervisors a datacenter supports.
type HypervisorTypes struct {
	XMLName xml.Name `xml:"hypervisortypes"`
	Resource
	Items []HypervisorType `xml:"hypervisortype"`
}

// Rack groups machines inside a datacenter. The datacenter comes from the
// "datacenter" link.
type Rack struct {
	XMLName xml.Name `xml:"rack"`
	Resource
	ID                 int    `xml:"id,omitempty"`
	Name               string `xml:"name"`
	ShortDescription   string `xml:"shortDescription,omitempty"`
	HAEnabled          bool   `xml:"haEnabled"`
	NRSQ               int    `xml:"nrsq"`
	VLANIDMin          int    `xml:"vlanIdMin"`
	VLANIDMax          int    `xml:"vlanIdMax"`
	VLANPerVDCReserved int    `xml:"vlanPerVdcReserved"`
}

// PathValue fills {datacenter} and {rack}.
func (r *Rack) PathValue(name string) (string, bool) {
	switch name {
	case "datacenter":
		return r.linkID("datacenter")
	case "rack":
		return idValue(r.ID)
	}
	return "", false
}

// Racks is a collection of racks.
type Racks struct {
	XMLName xml.Name `xml:"racks"`
	Resource
	Items []Rack `xml:"rack"`
}

// RemoteService is an agent the datacenter delegates work to. Its
// availability is probed through the "check" link.
type RemoteService struct {
	XMLName xml.Name `xml:"remoteService"`
	Resource
	ID     int               `xml:"id,omitempty"`
	URI    string            `xml:"uri"`
	Type   RemoteServiceType `xml:"type"`
	Status int               `xml:"status"`
}

// PathValue fills {datacenter} and {service}.
func (s *RemoteService) PathValue(name string) (string, bool) {
	switch name {
	case "datacenter":
		return s.linkID("datacenter")
	case "service":
		if s.Type == "" {
			return "", false
		}
		return s.Type.WireName(), true
	}
	return "", false
}

// RemoteServices is a collection of remote services.
type RemoteServices struct {
	XMLName xml.Name `xml:"remoteServices"`
	Resource
	Items []RemoteService `xml:"remoteService"`
}
