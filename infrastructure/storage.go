package infrastructure

import "encoding/xml"

// StorageDevice is a storage array managed by a datacenter.
type StorageDevice struct {
	XMLName xml.Name `xml:"storageDevice"`
	Resource
	ID                int    `xml:"id,omitempty"`
	Name              string `xml:"name"`
	StorageTechnology string `xml:"storageTechnology"`
	ManagementIP      string `xml:"managementIp"`
	ManagementPort    int    `xml:"managementPort"`
	ServiceIP         string `xml:"serviceIp"`
	ServicePort       int    `xml:"servicePort"`
	Username          string `xml:"username,omitempty"`
	Password          string `xml:"password,omitempty"`
}

// PathValue fills {datacenter} and {device}.
func (d *StorageDevice) PathValue(name string) (string, bool) {
	switch name {
	case "datacenter":
		return d.linkID("datacenter")
	case "device":
		return idValue(d.ID)
	}
	return "", false
}

// StorageDevices is a collection of storage devices.
type StorageDevices struct {
	XMLName xml.Name `xml:"storageDevices"`
	Resource
	Items []StorageDevice `xml:"storageDevice"`
}

// StorageDeviceMetadata describes a storage technology the datacenter
// supports.
type StorageDeviceMetadata struct {
	Type                   string `xml:"type"`
	DefaultManagementPort  int    `xml:"defaultManagementPort"`
	DefaultServicePort     int    `xml:"defaultServicePort"`
	RequiresAuthentication bool   `xml:"requiresAuthentication"`
}

// StorageDevicesMetadata lists the supported storage technologies.
type StorageDevicesMetadata struct {
	XMLName xml.Name `xml:"storageDevicesMetadata"`
	Resource
	Items []StorageDeviceMetadata `xml:"storageDeviceMetadata"`
}

// Tier is a storage service level grouping pools.
type Tier struct {
	XMLName xml.Name `xml:"tier"`
	Resource
	ID          int    `xml:"id,omitempty"`
	Name        string `xml:"name"`
	Description string `xml:"description,omitempty"`
	Enabled     bool   `xml:"enabled"`
}

// PathValue fills {datacenter} and {tier}.
func (t *Tier) PathValue(name string) (string, bool) {
	switch name {
	case "datacenter":
		return t.linkID("datacenter")
	case "tier":
		return idValue(t.ID)
	}
	return "", false
}

// Tiers is a collection of tiers.
type Tiers struct {
	XMLName xml.Name `xml:"tiers"`
	Resource
	Items []Tier `xml:"tier"`
}

// StoragePool is a pool of a storage device. Pools are identified by a
// string id assigned by the device.
type StoragePool struct {
	XMLName xml.Name `xml:"storagePool"`
	Resource
	IDStorage         string `xml:"idStorage,omitempty"`
	Name              string `xml:"name"`
	Type              string `xml:"type,omitempty"`
	Enabled           bool   `xml:"enabled"`
	TotalSizeInMB     int64  `xml:"totalSizeInMb"`
	UsedSizeInMB      int64  `xml:"usedSizeInMb"`
	AvailableSizeInMB int64  `xml:"availableSizeInMb"`
}

// PathValue fills {datacenter}, {device} and {pool}.
func (p *StoragePool) PathValue(name string) (string, bool) {
	switch name {
	case "datacenter", "device":
		return p.linkID(name)
	case "pool":
		return p.IDStorage, p.IDStorage != ""
	}
	return "", false
}

// StoragePools is a collection of storage pools.
type StoragePools struct {
	XMLName xml.Name `xml:"storagePools"`
	Resource
	Items []StoragePool `xml:"storagePool"`
}
