package infrastructure

import "encoding/xml"

// Machine is a physical host. Its datacenter and rack come from the
// "datacenter" and "rack" links.
type Machine struct {
	XMLName xml.Name `xml:"machine"`
	Resource
	ID                 int            `xml:"id,omitempty"`
	Name               string         `xml:"name"`
	Description        string         `xml:"description,omitempty"`
	IP                 string         `xml:"ip"`
	IPService          string         `xml:"ipService"`
	Type               HypervisorType `xml:"type"`
	State              MachineState   `xml:"state,omitempty"`
	VirtualRAMInMB     int            `xml:"virtualRamInMb"`
	VirtualRAMUsedInMB int            `xml:"virtualRamUsedInMb"`
	VirtualCPUCores    int            `xml:"virtualCpuCores"`
	VirtualCPUsUsed    int            `xml:"virtualCpusUsed"`
	User               string         `xml:"user,omitempty"`
	Password           string         `xml:"password,omitempty"`
	Port               int            `xml:"port,omitempty"`
	Datastores         []Datastore    `xml:"datastores>datastore"`
}

// PathValue fills {datacenter}, {rack} and {machine}.
func (m *Machine) PathValue(name string) (string, bool) {
	switch name {
	case "datacenter", "rack":
		return m.linkID(name)
	case "machine":
		return idValue(m.ID)
	}
	return "", false
}

// Machines is a collection of machines.
type Machines struct {
	XMLName xml.Name `xml:"machines"`
	Resource
	Items []Machine `xml:"machine"`
}

// Datastore is a storage location attached to a machine.
type Datastore struct {
	ID            int    `xml:"id,omitempty"`
	Name          string `xml:"name"`
	RootPath      string `xml:"rootPath"`
	Directory     string `xml:"directory"`
	Enabled       bool   `xml:"enabled"`
	SizeInMB      int64  `xml:"size"`
	UsedSizeInMB  int64  `xml:"usedSize"`
	DatastoreUUID string `xml:"datastoreUUID,omitempty"`
}

// MachineStateInfo is the result of a machine state check.
type MachineStateInfo struct {
	XMLName xml.Name `xml:"machineState"`
	Resource
	State MachineState `xml:"state"`
}

// MachineIpmiState is the result of an IPMI state check.
type MachineIpmiState struct {
	XMLName xml.Name `xml:"machineIpmiState"`
	Resource
	State string `xml:"state"`
}

// Enterprise is a tenant that may reserve machines.
type Enterprise struct {
	XMLName xml.Name `xml:"enterprise"`
	Resource
	ID   int    `xml:"id,omitempty"`
	Name string `xml:"name"`
}

// PathValue fills {enterprise}.
func (e *Enterprise) PathValue(name string) (string, bool) {
	if name == "enterprise" {
		return idValue(e.ID)
	}
	return "", false
}

// VirtualMachine is a virtual machine deployed on a physical machine,
// extended with its node placement.
type VirtualMachine struct {
	XMLName xml.Name `xml:"virtualMachineWithNodeExtended"`
	Resource
	ID          int    `xml:"id,omitempty"`
	UUID        string `xml:"uuid"`
	Name        string `xml:"name"`
	NodeName    string `xml:"nodeName"`
	CPU         int    `xml:"cpu"`
	RAM         int    `xml:"ram"`
	HDInBytes   int64  `xml:"hdInBytes"`
	VDRPIP      string `xml:"vdrpIP,omitempty"`
	VDRPPort    int    `xml:"vdrpPort,omitempty"`
	State       string `xml:"state"`
	Description string `xml:"description,omitempty"`
}

// VirtualMachines is a collection of virtual machines.
type VirtualMachines struct {
	XMLName xml.Name `xml:"virtualMachinesWithNodeExtended"`
	Resource
	Items []VirtualMachine `xml:"virtualMachineWithNodeExtended"`
}
