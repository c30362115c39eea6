package infrastructure

import "strings"

// HypervisorType identifies a hypervisor technology.
type HypervisorType string

const (
	VMX04     HypervisorType = "VMX_04"
	KVM       HypervisorType = "KVM"
	XenServer HypervisorType = "XENSERVER"
	HyperV301 HypervisorType = "HYPERV_301"
	Xen3      HypervisorType = "XEN_3"
	VBox      HypervisorType = "VBOX"
)

// WireName is the value sent in queries.
func (h HypervisorType) WireName() string { return string(h) }

// RemoteServiceType identifies a datacenter remote service.
type RemoteServiceType string

const (
	NodeCollector        RemoteServiceType = "NODE_COLLECTOR"
	VirtualSystemMonitor RemoteServiceType = "VIRTUAL_SYSTEM_MONITOR"
	VirtualFactory       RemoteServiceType = "VIRTUAL_FACTORY"
	StorageSystemMonitor RemoteServiceType = "STORAGE_SYSTEM_MONITOR"
	ApplianceManager     RemoteServiceType = "APPLIANCE_MANAGER"
	BPMService           RemoteServiceType = "BPM_SERVICE"
	DHCPService          RemoteServiceType = "DHCP_SERVICE"
	CloudProviderProxy   RemoteServiceType = "CLOUD_PROVIDER_PROXY"
	DHCPv6Service        RemoteServiceType = "DHCPv6"
)

var serviceMappings = map[RemoteServiceType]string{
	NodeCollector:        "nodecollector",
	VirtualSystemMonitor: "vsm",
	VirtualFactory:       "virtualfactory",
	StorageSystemMonitor: "storagesystemmonitor",
	ApplianceManager:     "am",
	BPMService:           "bpm-async",
	DHCPService:          "dhcp",
	CloudProviderProxy:   "cpp",
	DHCPv6Service:        "dhcpv6",
}

// WireName is the path segment of the service, e.g. "nodecollector".
func (t RemoteServiceType) WireName() string {
	if m, ok := serviceMappings[t]; ok {
		return m
	}
	return strings.ToLower(string(t))
}

// NetworkType classifies a datacenter network.
type NetworkType string

const (
	NetworkInternal  NetworkType = "INTERNAL"
	NetworkExternal  NetworkType = "EXTERNAL"
	NetworkUnmanaged NetworkType = "UNMANAGED"
	NetworkPublic    NetworkType = "PUBLIC"
)

// WireName is the value sent in queries.
func (n NetworkType) WireName() string { return string(n) }

// MachineState is the state of a physical machine.
type MachineState string

const (
	MachineStopped       MachineState = "STOPPED"
	MachineProvisioned   MachineState = "PROVISIONED"
	MachineNotManaged    MachineState = "NOT_MANAGED"
	MachineManaged       MachineState = "MANAGED"
	MachineHalted        MachineState = "HALTED"
	MachineUnlicensed    MachineState = "UNLICENSED"
	MachineHaltedForSave MachineState = "HALTED_FOR_SAVE"
	MachineDisabledForHA MachineState = "DISABLED_FOR_HA"
)

// WireName is the value sent in queries.
func (s MachineState) WireName() string { return string(s) }
