package infrastructure

import (
	"net/http"
	"sync"

	"github.com/kbukum/restwire/signature"
)

// Media types of the admin API.
var (
	DatacenterMedia             = MediaType("datacenter")
	DatacentersMedia            = MediaType("datacenters")
	LimitsMedia                 = MediaType("limits")
	HypervisorTypesMedia        = MediaType("hypervisortypes")
	RackMedia                   = MediaType("rack")
	RacksMedia                  = MediaType("racks")
	RemoteServiceMedia          = MediaType("remoteservice")
	RemoteServicesMedia         = MediaType("remoteservices")
	MachineMedia                = MediaType("machine")
	MachinesMedia               = MediaType("machines")
	MachineStateMedia           = MediaType("machinestate")
	MachineIpmiStateMedia       = MediaType("machineipmistate")
	VirtualMachineMedia         = MediaType("virtualmachinewithnodeextended")
	VirtualMachinesMedia        = MediaType("virtualmachineswithnodeextended")
	StorageDeviceMedia          = MediaType("storagedevice")
	StorageDevicesMedia         = MediaType("storagedevices")
	StorageDevicesMetadataMedia = MediaType("storagedevicesmetadata")
	TierMedia                   = MediaType("tier")
	TiersMedia                  = MediaType("tiers")
	StoragePoolMedia            = MediaType("storagepool")
	StoragePoolsMedia           = MediaType("storagepools")
	NetworkMedia                = MediaType("vlan")
	NetworksMedia               = MediaType("vlans")
	TagAvailabilityMedia        = MediaType("vlantagavailability")
	PublicIPMedia               = MediaType("publicip")
	ExternalIPMedia             = MediaType("externalip")
	UnmanagedIPMedia            = MediaType("unmanagedip")
)

// Argument types of the admin API. Their names appear in operation keys,
// e.g. "getRack(Datacenter,int)".
var (
	DatacenterArg         = signature.TypeOf[*Datacenter]("Datacenter")
	RackArg               = signature.TypeOf[*Rack]("Rack")
	RemoteServiceArg      = signature.TypeOf[*RemoteService]("RemoteService")
	RemoteServiceTypeArg  = signature.TypeOf[RemoteServiceType]("RemoteServiceType")
	HypervisorTypeArg     = signature.TypeOf[HypervisorType]("HypervisorType")
	MachineArg            = signature.TypeOf[*Machine]("Machine")
	EnterpriseArg         = signature.TypeOf[*Enterprise]("Enterprise")
	StorageDeviceArg      = signature.TypeOf[*StorageDevice]("StorageDevice")
	TierArg               = signature.TypeOf[*Tier]("Tier")
	StoragePoolArg        = signature.TypeOf[*StoragePool]("StoragePool")
	NetworkArg            = signature.TypeOf[*VLANNetwork]("VLANNetwork")
	DatacenterOptionsArg  = signature.TypeOf[*DatacenterOptions]("DatacenterOptions")
	MachineOptionsArg     = signature.TypeOf[*MachineOptions]("MachineOptions")
	IpmiOptionsArg        = signature.TypeOf[*IpmiOptions]("IpmiOptions")
	StoragePoolOptionsArg = signature.TypeOf[*StoragePoolOptions]("StoragePoolOptions")
	NetworkOptionsArg     = signature.TypeOf[*NetworkOptions]("NetworkOptions")
)

// Types returns the builtin argument types extended with the admin API's,
// for declarative loaders.
func Types() signature.TypeTable {
	return signature.Builtins().With(
		DatacenterArg, RackArg, RemoteServiceArg, RemoteServiceTypeArg, HypervisorTypeArg,
		MachineArg, EnterpriseArg, StorageDeviceArg, TierArg, StoragePoolArg, NetworkArg,
		DatacenterOptionsArg, MachineOptionsArg, IpmiOptionsArg, StoragePoolOptionsArg, NetworkOptionsArg,
	)
}

const (
	datacenterPath    = "/admin/datacenters/{datacenter}"
	rackPath          = datacenterPath + "/racks/{rack}"
	remoteServicePath = datacenterPath + "/remoteservices/{service}"
	machinePath       = rackPath + "/machines/{machine}"
	devicePath        = datacenterPath + "/storage/devices/{device}"
	tierPath          = datacenterPath + "/storage/tiers/{tier}"
	poolPath          = devicePath + "/pools/{pool}"
	networkPath       = datacenterPath + "/network/{network}"
)

var registry = sync.OnceValue(func() *signature.Registry {
	return signature.MustRegistry(Signatures()...)
})

// Registry returns the immutable registry of the admin API, built on first
// use.
func Registry() *signature.Registry { return registry() }

// Signatures declares every operation of the admin API.
func Signatures() []*signature.Signature {
	var sigs []*signature.Signature
	for _, group := range [][]*signature.Signature{
		datacenterOperations(),
		rackOperations(),
		remoteServiceOperations(),
		discoveryOperations(),
		machineOperations(),
		storageOperations(),
		networkOperations(),
	} {
		sigs = append(sigs, group...)
	}
	return sigs
}

func datacenterOperations() []*signature.Signature {
	return []*signature.Signature{
		signature.Declare("listDatacenters", http.MethodGet, "/admin/datacenters").
			Consumes(DatacentersMedia).
			MustBuild(),
		signature.Declare("createDatacenter", http.MethodPost, "/admin/datacenters").
			Params(DatacenterArg).Body(0).
			Produces(DatacenterMedia).Consumes(DatacenterMedia).
			MustBuild(),
		signature.Declare("getDatacenter", http.MethodGet, datacenterPath).
			Params(signature.Int).Path(0, "datacenter").
			Consumes(DatacenterMedia).
			Fallback(signature.NullOnNotFound).
			MustBuild(),
		signature.Declare("updateDatacenter", http.MethodPut, datacenterPath).
			Params(DatacenterArg).Path(0, "datacenter").Body(0).
			Produces(DatacenterMedia).Consumes(DatacenterMedia).
			MustBuild(),
		signature.Declare("deleteDatacenter", http.MethodDelete, datacenterPath).
			Params(DatacenterArg).Path(0, "datacenter").
			Parser(signature.ReleaseOnly).
			MustBuild(),
		signature.Declare("listLimits", http.MethodGet, datacenterPath+"/action/getLimits").
			Params(DatacenterArg).Path(0, "datacenter").
			Consumes(LimitsMedia).
			MustBuild(),
		signature.Declare("getHypervisorTypeFromMachine", http.MethodGet, datacenterPath+"/action/hypervisor").
			Params(DatacenterArg, DatacenterOptionsArg).Path(0, "datacenter").Options(1).
			Parser(signature.PlainText).
			MustBuild(),
		signature.Declare("getHypervisorTypes", http.MethodGet, datacenterPath+"/hypervisors").
			Params(DatacenterArg).Path(0, "datacenter").
			Consumes(HypervisorTypesMedia).
			MustBuild(),
	}
}

func rackOperations() []*signature.Signature {
	return []*signature.Signature{
		signature.Declare("listRacks", http.MethodGet, datacenterPath+"/racks").
			Params(DatacenterArg).Path(0, "datacenter").
			Consumes(RacksMedia).
			MustBuild(),
		signature.Declare("createRack", http.MethodPost, datacenterPath+"/racks").
			Params(DatacenterArg, RackArg).Path(0, "datacenter").Body(1).
			Produces(RackMedia).Consumes(RackMedia).
			MustBuild(),
		signature.Declare("getRack", http.MethodGet, rackPath).
			Params(DatacenterArg, signature.Int).Path(0, "datacenter").Path(1, "rack").
			Consumes(RackMedia).
			Fallback(signature.NullOnNotFound).
			MustBuild(),
		signature.Declare("updateRack", http.MethodPut, rackPath).
			Params(RackArg).Path(0, "datacenter", "rack").Body(0).
			Produces(RackMedia).Consumes(RackMedia).
			MustBuild(),
		signature.Declare("deleteRack", http.MethodDelete, rackPath).
			Params(RackArg).Path(0, "datacenter", "rack").
			Parser(signature.ReleaseOnly).
			MustBuild(),
	}
}

func remoteServiceOperations() []*signature.Signature {
	return []*signature.Signature{
		signature.Declare("listRemoteServices", http.MethodGet, datacenterPath+"/remoteservices").
			Params(DatacenterArg).Path(0, "datacenter").
			Consumes(RemoteServicesMedia).
			MustBuild(),
		signature.Declare("createRemoteService", http.MethodPost, datacenterPath+"/remoteservices").
			Params(DatacenterArg, RemoteServiceArg).Path(0, "datacenter").Body(1).
			Produces(RemoteServiceMedia).Consumes(RemoteServiceMedia).
			MustBuild(),
		signature.Declare("getRemoteService", http.MethodGet, remoteServicePath).
			Params(DatacenterArg, RemoteServiceTypeArg).Path(0, "datacenter").Path(1, "service").
			Consumes(RemoteServiceMedia).
			Fallback(signature.NullOnNotFound).
			MustBuild(),
		signature.Declare("updateRemoteService", http.MethodPut, remoteServicePath).
			Params(RemoteServiceArg).Path(0, "datacenter", "service").Body(0).
			Produces(RemoteServiceMedia).Consumes(RemoteServiceMedia).
			MustBuild(),
		signature.Declare("deleteRemoteService", http.MethodDelete, remoteServicePath).
			Params(RemoteServiceArg).Path(0, "datacenter", "service").
			Parser(signature.ReleaseOnly).
			MustBuild(),
		signature.Declare("isAvailable", http.MethodGet, "/").
			Params(RemoteServiceArg).Endpoint(0, "check").
			Parser(signature.BooleanOn2xx).
			Fallback(signature.FalseIfUnavailable).
			MustBuild(),
	}
}

// discoveryOperations query hypervisors that are not registered yet. Each
// comes with and without a trailing options argument.
func discoveryOperations() []*signature.Signature {
	var sigs []*signature.Signature
	for _, withOptions := range []bool{false, true} {
		sigs = append(sigs,
			discovery("discoverSingleMachine", "discoversingle", withOptions, MachineOptionsArg, MachineMedia,
				query{"ip", signature.String}, query{"hypervisor", HypervisorTypeArg},
				query{"user", signature.String}, query{"password", signature.String}),
			discovery("discoverMultipleMachines", "discovermultiple", withOptions, MachineOptionsArg, MachinesMedia,
				query{"ipFrom", signature.String}, query{"ipTo", signature.String}, query{"hypervisor", HypervisorTypeArg},
				query{"user", signature.String}, query{"password", signature.String}),
			discovery("checkMachineState", "checkmachinestate", withOptions, MachineOptionsArg, MachineStateMedia,
				query{"ip", signature.String}, query{"hypervisor", HypervisorTypeArg},
				query{"user", signature.String}, query{"password", signature.String}),
			discovery("checkMachineIpmiState", "checkmachineipmistate", withOptions, IpmiOptionsArg, MachineIpmiStateMedia,
				query{"ip", signature.String}, query{"user", signature.String}, query{"password", signature.String}),
		)
	}
	return sigs
}

type query struct {
	name string
	typ  signature.ArgType
}

// discovery declares a datacenter action whose arguments after the
// datacenter are query parameters, optionally followed by an options
// argument.
func discovery(name, action string, withOptions bool, optsType signature.ArgType, consumes string, params ...query) *signature.Signature {
	types := []signature.ArgType{DatacenterArg}
	for _, q := range params {
		types = append(types, q.typ)
	}
	if withOptions {
		types = append(types, optsType)
	}

	d := signature.Declare(name, http.MethodGet, datacenterPath+"/action/"+action).
		Params(types...).
		Path(0, "datacenter")
	for i, q := range params {
		d.Query(i+1, q.name)
	}
	if withOptions {
		d.Options(len(params) + 1)
	}
	return d.Consumes(consumes).
		Fallback(signature.PropagateDomainExceptionOnClientOrNotFound).
		MustBuild()
}

func machineOperations() []*signature.Signature {
	return []*signature.Signature{
		signature.Declare("listMachines", http.MethodGet, rackPath+"/machines").
			Params(RackArg).Path(0, "datacenter", "rack").
			Consumes(MachinesMedia).
			MustBuild(),
		signature.Declare("getMachine", http.MethodGet, machinePath).
			Params(RackArg, signature.Int).Path(0, "datacenter", "rack").Path(1, "machine").
			Consumes(MachineMedia).
			Fallback(signature.NullOnNotFound).
			MustBuild(),
		signature.Declare("createMachine", http.MethodPost, rackPath+"/machines").
			Params(RackArg, MachineArg).Path(0, "datacenter", "rack").Body(1).
			Produces(MachineMedia).Consumes(MachineMedia).
			MustBuild(),
		signature.Declare("updateMachine", http.MethodPut, machinePath).
			Params(MachineArg).Path(0, "datacenter", "rack", "machine").Body(0).
			Produces(MachineMedia).Consumes(MachineMedia).
			MustBuild(),
		signature.Declare("deleteMachine", http.MethodDelete, machinePath).
			Params(MachineArg).Path(0, "datacenter", "rack", "machine").
			Parser(signature.ReleaseOnly).
			MustBuild(),
		signature.Declare("checkMachineState", http.MethodGet, machinePath+"/action/checkstate").
			Params(MachineArg, signature.Bool).Path(0, "datacenter", "rack", "machine").Query(1, "sync").
			Consumes(MachineStateMedia).
			MustBuild(),
		signature.Declare("checkMachineIpmiState", http.MethodGet, machinePath+"/action/checkipmistate").
			Params(MachineArg).Path(0, "datacenter", "rack", "machine").
			Consumes(MachineIpmiStateMedia).
			MustBuild(),
		signature.Declare("reserveMachine", http.MethodPost, "/admin/enterprises/{enterprise}/reservedmachines").
			Params(EnterpriseArg, MachineArg).Path(0, "enterprise").Body(1).
			Produces(MachineMedia).Consumes(MachineMedia).
			MustBuild(),
		signature.Declare("cancelReservation", http.MethodDelete, "/admin/enterprises/{enterprise}/reservedmachines/{machine}").
			Params(EnterpriseArg, MachineArg).Path(0, "enterprise").Path(1, "machine").
			Parser(signature.ReleaseOnly).
			MustBuild(),
		signature.Declare("listVirtualMachinesByMachine", http.MethodGet, machinePath+"/virtualmachines").
			Params(MachineArg, MachineOptionsArg).Path(0, "datacenter", "rack", "machine").Options(1).
			Consumes(VirtualMachinesMedia).
			MustBuild(),
		signature.Declare("getVirtualMachine", http.MethodGet, machinePath+"/virtualmachines/{vm}").
			Params(MachineArg, signature.Int).Path(0, "datacenter", "rack", "machine").Path(1, "vm").
			Consumes(VirtualMachineMedia).
			Fallback(signature.NullOnNotFound).
			MustBuild(),
	}
}

func storageOperations() []*signature.Signature {
	return []*signature.Signature{
		signature.Declare("listStorageDevices", http.MethodGet, datacenterPath+"/storage/devices").
			Params(DatacenterArg).Path(0, "datacenter").
			Consumes(StorageDevicesMedia).
			MustBuild(),
		signature.Declare("listSupportedStorageDevices", http.MethodGet, datacenterPath+"/storage/devices/action/supported").
			Params(DatacenterArg).Path(0, "datacenter").
			Consumes(StorageDevicesMetadataMedia).
			MustBuild(),
		signature.Declare("createStorageDevice", http.MethodPost, datacenterPath+"/storage/devices").
			Params(DatacenterArg, StorageDeviceArg).Path(0, "datacenter").Body(1).
			Produces(StorageDeviceMedia).Consumes(StorageDeviceMedia).
			MustBuild(),
		signature.Declare("deleteStorageDevice", http.MethodDelete, devicePath).
			Params(StorageDeviceArg).Path(0, "datacenter", "device").
			Parser(signature.ReleaseOnly).
			MustBuild(),
		signature.Declare("updateStorageDevice", http.MethodPut, devicePath).
			Params(StorageDeviceArg).Path(0, "datacenter", "device").Body(0).
			Produces(StorageDeviceMedia).Consumes(StorageDeviceMedia).
			MustBuild(),
		signature.Declare("getStorageDevice", http.MethodGet, devicePath).
			Params(DatacenterArg, signature.Int).Path(0, "datacenter").Path(1, "device").
			Consumes(StorageDeviceMedia).
			Fallback(signature.NullOnNotFound).
			MustBuild(),

		signature.Declare("listTiers", http.MethodGet, datacenterPath+"/storage/tiers").
			Params(DatacenterArg).Path(0, "datacenter").
			Consumes(TiersMedia).
			MustBuild(),
		signature.Declare("updateTier", http.MethodPut, tierPath).
			Params(TierArg).Path(0, "datacenter", "tier").Body(0).
			Produces(TierMedia).Consumes(TierMedia).
			MustBuild(),
		signature.Declare("getTier", http.MethodGet, tierPath).
			Params(DatacenterArg, signature.Int).Path(0, "datacenter").Path(1, "tier").
			Consumes(TierMedia).
			Fallback(signature.NullOnNotFound).
			MustBuild(),

		signature.Declare("listStoragePools", http.MethodGet, devicePath+"/pools").
			Params(StorageDeviceArg, StoragePoolOptionsArg).Path(0, "datacenter", "device").Options(1).
			Consumes(StoragePoolsMedia).
			MustBuild(),
		signature.Declare("listStoragePools", http.MethodGet, tierPath+"/pools").
			Params(TierArg).Path(0, "datacenter", "tier").
			Consumes(StoragePoolsMedia).
			MustBuild(),
		signature.Declare("createStoragePool", http.MethodPost, devicePath+"/pools").
			Params(StorageDeviceArg, StoragePoolArg).Path(0, "datacenter", "device").Body(1).
			Produces(StoragePoolMedia).Consumes(StoragePoolMedia).
			MustBuild(),
		signature.Declare("updateStoragePool", http.MethodPut, poolPath).
			Params(StoragePoolArg).Path(0, "datacenter", "device", "pool").Body(0).
			Produces(StoragePoolMedia).Consumes(StoragePoolMedia).
			MustBuild(),
		signature.Declare("deleteStoragePool", http.MethodDelete, poolPath).
			Params(StoragePoolArg).Path(0, "datacenter", "device", "pool").
			Parser(signature.ReleaseOnly).
			MustBuild(),
		signature.Declare("getStoragePool", http.MethodGet, poolPath).
			Params(StorageDeviceArg, signature.String).Path(0, "datacenter", "device").Path(1, "pool").
			Consumes(StoragePoolMedia).
			Fallback(signature.NullOnNotFound).
			MustBuild(),
		signature.Declare("refreshStoragePool", http.MethodGet, poolPath).
			Params(StoragePoolArg, StoragePoolOptionsArg).Path(0, "datacenter", "device", "pool").Options(1).
			Consumes(StoragePoolMedia).
			Fallback(signature.MapClientErrorsToDomainErrors).
			MustBuild(),
	}
}

func networkOperations() []*signature.Signature {
	ip := func(name, consumes string) *signature.Signature {
		return signature.Declare(name, http.MethodGet, "/{ip}").
			Params(NetworkArg, signature.Int).Endpoint(0, "ips").Path(1, "ip").
			Consumes(consumes).
			MustBuild()
	}
	return []*signature.Signature{
		signature.Declare("listNetworks", http.MethodGet, datacenterPath+"/network").
			Params(DatacenterArg).Path(0, "datacenter").
			Consumes(NetworksMedia).
			MustBuild(),
		signature.Declare("listNetworks", http.MethodGet, datacenterPath+"/network").
			Params(DatacenterArg, NetworkOptionsArg).Path(0, "datacenter").Options(1).
			Consumes(NetworksMedia).
			MustBuild(),
		signature.Declare("getNetwork", http.MethodGet, networkPath).
			Params(DatacenterArg, signature.Int).Path(0, "datacenter").Path(1, "network").
			Consumes(NetworkMedia).
			Fallback(signature.NullOnNotFound).
			MustBuild(),
		signature.Declare("createNetwork", http.MethodPost, datacenterPath+"/network").
			Params(DatacenterArg, NetworkArg).Path(0, "datacenter").Body(1).
			Produces(NetworkMedia).Consumes(NetworkMedia).
			MustBuild(),
		signature.Declare("updateNetwork", http.MethodPut, networkPath).
			Params(NetworkArg).Path(0, "datacenter", "network").Body(0).
			Produces(NetworkMedia).Consumes(NetworkMedia).
			MustBuild(),
		signature.Declare("deleteNetwork", http.MethodDelete, networkPath).
			Params(NetworkArg).Path(0, "datacenter", "network").
			Parser(signature.ReleaseOnly).
			MustBuild(),
		signature.Declare("checkTagAvailability", http.MethodGet, datacenterPath+"/network/action/checkavailability").
			Params(DatacenterArg, signature.Int).Path(0, "datacenter").Query(1, "tag").
			Consumes(TagAvailabilityMedia).
			Fallback(signature.MapClientErrorsToDomainErrors).
			MustBuild(),
		ip("getPublicIp", PublicIPMedia),
		ip("getExternalIp", ExternalIPMedia),
		ip("getUnmanagedIp", UnmanagedIPMedia),
	}
}
