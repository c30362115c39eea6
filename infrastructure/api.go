package infrastructure

import (
	"context"
	"strings"

	"github.com/kbukum/restwire/filter"
	"github.com/kbukum/restwire/rest"
)

// ServiceName names the client in logs, spans and metrics.
const ServiceName = "infrastructure"

// API is the typed client of the infrastructure administration API.
type API struct {
	client *rest.Client
}

// New creates an API authenticating with HTTP Basic credentials.
func New(baseURL, username, password string, opts ...rest.Option) (*API, error) {
	opts = append([]rest.Option{
		rest.WithName(ServiceName),
		rest.WithFilters(filter.Basic(username, password)),
	}, opts...)
	c, err := rest.New(Registry(), baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewAPI(c), nil
}

// NewAPI wraps a client built over Registry(), e.g. by rest.Component.
func NewAPI(c *rest.Client) *API {
	return &API{client: c}
}

// Client returns the underlying client.
func (a *API) Client() *rest.Client { return a.client }

func call[T any](ctx context.Context, c *rest.Client, name string, args ...any) (*T, error) {
	v, err := rest.Call[T](ctx, c, name, args...)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// find returns nil, nil when the entity does not exist.
func find[T any](ctx context.Context, c *rest.Client, name string, args ...any) (*T, error) {
	v, ok, err := rest.Find[T](ctx, c, name, args...)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// --- Datacenters ---

// ListDatacenters lists every datacenter.
func (a *API) ListDatacenters(ctx context.Context) (*Datacenters, error) {
	return call[Datacenters](ctx, a.client, "listDatacenters")
}

// CreateDatacenter creates a datacenter.
func (a *API) CreateDatacenter(ctx context.Context, dc *Datacenter) (*Datacenter, error) {
	return call[Datacenter](ctx, a.client, "createDatacenter", dc)
}

// GetDatacenter returns the datacenter with the given id, or nil.
func (a *API) GetDatacenter(ctx context.Context, id int) (*Datacenter, error) {
	return find[Datacenter](ctx, a.client, "getDatacenter", id)
}

// UpdateDatacenter updates a datacenter.
func (a *API) UpdateDatacenter(ctx context.Context, dc *Datacenter) (*Datacenter, error) {
	return call[Datacenter](ctx, a.client, "updateDatacenter", dc)
}

// DeleteDatacenter deletes a datacenter.
func (a *API) DeleteDatacenter(ctx context.Context, dc *Datacenter) error {
	return rest.Exec(ctx, a.client, "deleteDatacenter", dc)
}

// ListLimits lists the enterprise limits defined on a datacenter.
func (a *API) ListLimits(ctx context.Context, dc *Datacenter) (*DatacentersLimits, error) {
	return call[DatacentersLimits](ctx, a.client, "listLimits", dc)
}

// GetHypervisorTypeFromMachine asks the datacenter which hypervisor runs
// on the machine at opts.IP.
func (a *API) GetHypervisorTypeFromMachine(ctx context.Context, dc *Datacenter, opts *DatacenterOptions) (HypervisorType, error) {
	s, err := rest.Call[string](ctx, a.client, "getHypervisorTypeFromMachine", dc, opts)
	if err != nil {
		return "", err
	}
	return HypervisorType(strings.TrimSpace(s)), nil
}

// GetHypervisorTypes lists the hypervisors a datacenter supports.
func (a *API) GetHypervisorTypes(ctx context.Context, dc *Datacenter) (*HypervisorTypes, error) {
	return call[HypervisorTypes](ctx, a.client, "getHypervisorTypes", dc)
}

// --- Racks ---

// ListRacks lists the racks of a datacenter.
func (a *API) ListRacks(ctx context.Context, dc *Datacenter) (*Racks, error) {
	return call[Racks](ctx, a.client, "listRacks", dc)
}

// CreateRack creates a rack in a datacenter.
func (a *API) CreateRack(ctx context.Context, dc *Datacenter, rack *Rack) (*Rack, error) {
	return call[Rack](ctx, a.client, "createRack", dc, rack)
}

// GetRack returns a rack of a datacenter, or nil.
func (a *API) GetRack(ctx context.Context, dc *Datacenter, id int) (*Rack, error) {
	return find[Rack](ctx, a.client, "getRack", dc, id)
}

// UpdateRack updates a rack.
func (a *API) UpdateRack(ctx context.Context, rack *Rack) (*Rack, error) {
	return call[Rack](ctx, a.client, "updateRack", rack)
}

// DeleteRack deletes a rack.
func (a *API) DeleteRack(ctx context.Context, rack *Rack) error {
	return rest.Exec(ctx, a.client, "deleteRack", rack)
}

// --- Remote services ---

// ListRemoteServices lists the remote services of a datacenter.
func (a *API) ListRemoteServices(ctx context.Context, dc *Datacenter) (*RemoteServices, error) {
	return call[RemoteServices](ctx, a.client, "listRemoteServices", dc)
}

// CreateRemoteService registers a remote service in a datacenter.
func (a *API) CreateRemoteService(ctx context.Context, dc *Datacenter, rs *RemoteService) (*RemoteService, error) {
	return call[RemoteService](ctx, a.client, "createRemoteService", dc, rs)
}

// GetRemoteService returns the remote service of the given type, or nil.
func (a *API) GetRemoteService(ctx context.Context, dc *Datacenter, typ RemoteServiceType) (*RemoteService, error) {
	return find[RemoteService](ctx, a.client, "getRemoteService", dc, typ)
}

// UpdateRemoteService updates a remote service.
func (a *API) UpdateRemoteService(ctx context.Context, rs *RemoteService) (*RemoteService, error) {
	return call[RemoteService](ctx, a.client, "updateRemoteService", rs)
}

// DeleteRemoteService deletes a remote service.
func (a *API) DeleteRemoteService(ctx context.Context, rs *RemoteService) error {
	return rest.Exec(ctx, a.client, "deleteRemoteService", rs)
}

// IsAvailable probes the remote service through its check link. An
// unreachable service reports false without an error.
func (a *API) IsAvailable(ctx context.Context, rs *RemoteService) (bool, error) {
	return rest.Call[bool](ctx, a.client, "isAvailable", rs)
}

// --- Discovery ---

// DiscoverSingleMachine discovers the hypervisor at ip.
func (a *API) DiscoverSingleMachine(ctx context.Context, dc *Datacenter, ip string, hypervisor HypervisorType, user, password string) (*Machine, error) {
	return call[Machine](ctx, a.client, "discoverSingleMachine", dc, ip, hypervisor, user, password)
}

// DiscoverSingleMachineWithOptions is DiscoverSingleMachine with options.
func (a *API) DiscoverSingleMachineWithOptions(ctx context.Context, dc *Datacenter, ip string, hypervisor HypervisorType, user, password string, opts *MachineOptions) (*Machine, error) {
	return call[Machine](ctx, a.client, "discoverSingleMachine", dc, ip, hypervisor, user, password, opts)
}

// DiscoverMultipleMachines discovers the hypervisors in an address range.
func (a *API) DiscoverMultipleMachines(ctx context.Context, dc *Datacenter, ipFrom, ipTo string, hypervisor HypervisorType, user, password string) (*Machines, error) {
	return call[Machines](ctx, a.client, "discoverMultipleMachines", dc, ipFrom, ipTo, hypervisor, user, password)
}

// DiscoverMultipleMachinesWithOptions is DiscoverMultipleMachines with
// options.
func (a *API) DiscoverMultipleMachinesWithOptions(ctx context.Context, dc *Datacenter, ipFrom, ipTo string, hypervisor HypervisorType, user, password string, opts *MachineOptions) (*Machines, error) {
	return call[Machines](ctx, a.client, "discoverMultipleMachines", dc, ipFrom, ipTo, hypervisor, user, password, opts)
}

// CheckMachineState checks the state of an unregistered hypervisor.
func (a *API) CheckMachineState(ctx context.Context, dc *Datacenter, ip string, hypervisor HypervisorType, user, password string) (*MachineStateInfo, error) {
	return call[MachineStateInfo](ctx, a.client, "checkMachineState", dc, ip, hypervisor, user, password)
}

// CheckMachineStateWithOptions is CheckMachineState with options.
func (a *API) CheckMachineStateWithOptions(ctx context.Context, dc *Datacenter, ip string, hypervisor HypervisorType, user, password string, opts *MachineOptions) (*MachineStateInfo, error) {
	return call[MachineStateInfo](ctx, a.client, "checkMachineState", dc, ip, hypervisor, user, password, opts)
}

// CheckMachineIpmiState checks the IPMI state of an unregistered machine.
func (a *API) CheckMachineIpmiState(ctx context.Context, dc *Datacenter, ip, user, password string) (*MachineIpmiState, error) {
	return call[MachineIpmiState](ctx, a.client, "checkMachineIpmiState", dc, ip, user, password)
}

// CheckMachineIpmiStateWithOptions is CheckMachineIpmiState with options.
func (a *API) CheckMachineIpmiStateWithOptions(ctx context.Context, dc *Datacenter, ip, user, password string, opts *IpmiOptions) (*MachineIpmiState, error) {
	return call[MachineIpmiState](ctx, a.client, "checkMachineIpmiState", dc, ip, user, password, opts)
}

// --- Machines ---

// ListMachines lists the machines of a rack.
func (a *API) ListMachines(ctx context.Context, rack *Rack) (*Machines, error) {
	return call[Machines](ctx, a.client, "listMachines", rack)
}

// GetMachine returns a machine of a rack, or nil.
func (a *API) GetMachine(ctx context.Context, rack *Rack, id int) (*Machine, error) {
	return find[Machine](ctx, a.client, "getMachine", rack, id)
}

// CreateMachine registers a machine in a rack.
func (a *API) CreateMachine(ctx context.Context, rack *Rack, m *Machine) (*Machine, error) {
	return call[Machine](ctx, a.client, "createMachine", rack, m)
}

// UpdateMachine updates a machine.
func (a *API) UpdateMachine(ctx context.Context, m *Machine) (*Machine, error) {
	return call[Machine](ctx, a.client, "updateMachine", m)
}

// DeleteMachine deletes a machine.
func (a *API) DeleteMachine(ctx context.Context, m *Machine) error {
	return rest.Exec(ctx, a.client, "deleteMachine", m)
}

// CheckRegisteredMachineState checks the state of a registered machine.
// With sync the machine record is updated with the result.
func (a *API) CheckRegisteredMachineState(ctx context.Context, m *Machine, sync bool) (*MachineStateInfo, error) {
	return call[MachineStateInfo](ctx, a.client, "checkMachineState", m, sync)
}

// CheckRegisteredMachineIpmiState checks the IPMI state of a registered
// machine.
func (a *API) CheckRegisteredMachineIpmiState(ctx context.Context, m *Machine) (*MachineIpmiState, error) {
	return call[MachineIpmiState](ctx, a.client, "checkMachineIpmiState", m)
}

// ReserveMachine reserves a machine for an enterprise.
func (a *API) ReserveMachine(ctx context.Context, e *Enterprise, m *Machine) (*Machine, error) {
	return call[Machine](ctx, a.client, "reserveMachine", e, m)
}

// CancelReservation releases a machine reserved by an enterprise.
func (a *API) CancelReservation(ctx context.Context, e *Enterprise, m *Machine) error {
	return rest.Exec(ctx, a.client, "cancelReservation", e, m)
}

// ListVirtualMachinesByMachine lists the virtual machines deployed on a
// machine.
func (a *API) ListVirtualMachinesByMachine(ctx context.Context, m *Machine, opts *MachineOptions) (*VirtualMachines, error) {
	return call[VirtualMachines](ctx, a.client, "listVirtualMachinesByMachine", m, opts)
}

// GetVirtualMachine returns a virtual machine deployed on a machine, or
// nil.
func (a *API) GetVirtualMachine(ctx context.Context, m *Machine, id int) (*VirtualMachine, error) {
	return find[VirtualMachine](ctx, a.client, "getVirtualMachine", m, id)
}

// --- Storage ---

// ListStorageDevices lists the storage devices of a datacenter.
func (a *API) ListStorageDevices(ctx context.Context, dc *Datacenter) (*StorageDevices, error) {
	return call[StorageDevices](ctx, a.client, "listStorageDevices", dc)
}

// ListSupportedStorageDevices lists the storage technologies a datacenter
// supports.
func (a *API) ListSupportedStorageDevices(ctx context.Context, dc *Datacenter) (*StorageDevicesMetadata, error) {
	return call[StorageDevicesMetadata](ctx, a.client, "listSupportedStorageDevices", dc)
}

// CreateStorageDevice registers a storage device.
func (a *API) CreateStorageDevice(ctx context.Context, dc *Datacenter, d *StorageDevice) (*StorageDevice, error) {
	return call[StorageDevice](ctx, a.client, "createStorageDevice", dc, d)
}

// DeleteStorageDevice deletes a storage device.
func (a *API) DeleteStorageDevice(ctx context.Context, d *StorageDevice) error {
	return rest.Exec(ctx, a.client, "deleteStorageDevice", d)
}

// UpdateStorageDevice updates a storage device.
func (a *API) UpdateStorageDevice(ctx context.Context, d *StorageDevice) (*StorageDevice, error) {
	return call[StorageDevice](ctx, a.client, "updateStorageDevice", d)
}

// GetStorageDevice returns a storage device, or nil.
func (a *API) GetStorageDevice(ctx context.Context, dc *Datacenter, id int) (*StorageDevice, error) {
	return find[StorageDevice](ctx, a.client, "getStorageDevice", dc, id)
}

// ListTiers lists the storage tiers of a datacenter.
func (a *API) ListTiers(ctx context.Context, dc *Datacenter) (*Tiers, error) {
	return call[Tiers](ctx, a.client, "listTiers", dc)
}

// UpdateTier updates a tier.
func (a *API) UpdateTier(ctx context.Context, t *Tier) (*Tier, error) {
	return call[Tier](ctx, a.client, "updateTier", t)
}

// GetTier returns a tier, or nil.
func (a *API) GetTier(ctx context.Context, dc *Datacenter, id int) (*Tier, error) {
	return find[Tier](ctx, a.client, "getTier", dc, id)
}

// ListStoragePools lists the pools of a storage device.
func (a *API) ListStoragePools(ctx context.Context, d *StorageDevice, opts *StoragePoolOptions) (*StoragePools, error) {
	return call[StoragePools](ctx, a.client, "listStoragePools", d, opts)
}

// ListTierStoragePools lists the pools assigned to a tier.
func (a *API) ListTierStoragePools(ctx context.Context, t *Tier) (*StoragePools, error) {
	return call[StoragePools](ctx, a.client, "listStoragePools", t)
}

// CreateStoragePool creates a pool on a storage device.
func (a *API) CreateStoragePool(ctx context.Context, d *StorageDevice, p *StoragePool) (*StoragePool, error) {
	return call[StoragePool](ctx, a.client, "createStoragePool", d, p)
}

// UpdateStoragePool updates a pool.
func (a *API) UpdateStoragePool(ctx context.Context, p *StoragePool) (*StoragePool, error) {
	return call[StoragePool](ctx, a.client, "updateStoragePool", p)
}

// DeleteStoragePool deletes a pool.
func (a *API) DeleteStoragePool(ctx context.Context, p *StoragePool) error {
	return rest.Exec(ctx, a.client, "deleteStoragePool", p)
}

// GetStoragePool returns a pool of a storage device, or nil.
func (a *API) GetStoragePool(ctx context.Context, d *StorageDevice, id string) (*StoragePool, error) {
	return find[StoragePool](ctx, a.client, "getStoragePool", d, id)
}

// RefreshStoragePool reloads a pool from its device. Client errors come
// back as *errors.DomainError.
func (a *API) RefreshStoragePool(ctx context.Context, p *StoragePool, opts *StoragePoolOptions) (*StoragePool, error) {
	return call[StoragePool](ctx, a.client, "refreshStoragePool", p, opts)
}

// --- Networks ---

// ListNetworks lists the networks of a datacenter.
func (a *API) ListNetworks(ctx context.Context, dc *Datacenter) (*VLANNetworks, error) {
	return call[VLANNetworks](ctx, a.client, "listNetworks", dc)
}

// ListNetworksWithOptions lists the networks of a datacenter matching opts.
func (a *API) ListNetworksWithOptions(ctx context.Context, dc *Datacenter, opts *NetworkOptions) (*VLANNetworks, error) {
	return call[VLANNetworks](ctx, a.client, "listNetworks", dc, opts)
}

// GetNetwork returns a network, or nil.
func (a *API) GetNetwork(ctx context.Context, dc *Datacenter, id int) (*VLANNetwork, error) {
	return find[VLANNetwork](ctx, a.client, "getNetwork", dc, id)
}

// CreateNetwork creates a network.
func (a *API) CreateNetwork(ctx context.Context, dc *Datacenter, n *VLANNetwork) (*VLANNetwork, error) {
	return call[VLANNetwork](ctx, a.client, "createNetwork", dc, n)
}

// UpdateNetwork updates a network.
func (a *API) UpdateNetwork(ctx context.Context, n *VLANNetwork) (*VLANNetwork, error) {
	return call[VLANNetwork](ctx, a.client, "updateNetwork", n)
}

// DeleteNetwork deletes a network.
func (a *API) DeleteNetwork(ctx context.Context, n *VLANNetwork) error {
	return rest.Exec(ctx, a.client, "deleteNetwork", n)
}

// CheckTagAvailability checks whether a VLAN tag is free in a datacenter.
func (a *API) CheckTagAvailability(ctx context.Context, dc *Datacenter, tag int) (*TagAvailability, error) {
	return call[TagAvailability](ctx, a.client, "checkTagAvailability", dc, tag)
}

// GetPublicIP returns an address of a public network.
func (a *API) GetPublicIP(ctx context.Context, n *VLANNetwork, id int) (*PublicIP, error) {
	return call[PublicIP](ctx, a.client, "getPublicIp", n, id)
}

// GetExternalIP returns an address of an external network.
func (a *API) GetExternalIP(ctx context.Context, n *VLANNetwork, id int) (*ExternalIP, error) {
	return call[ExternalIP](ctx, a.client, "getExternalIp", n, id)
}

// GetUnmanagedIP returns an address of an unmanaged network.
func (a *API) GetUnmanagedIP(ctx context.Context, n *VLANNetwork, id int) (*UnmanagedIP, error) {
	return call[UnmanagedIP](ctx, a.client, "getUnmanagedIp", n, id)
}
