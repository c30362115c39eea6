package infrastructure

import "github.com/kbukum/restwire/signature"

// Options are built with pointer fields; nil leaves the parameter out of
// the request. util.Ptr is the usual way to set one:
//
//	infrastructure.MachineOptions{Port: util.Ptr(8889)}

// DatacenterOptions filter datacenter actions.
type DatacenterOptions struct {
	IP *string
}

// OptionFields implements signature.Options.
func (o *DatacenterOptions) OptionFields() []signature.OptionField {
	return []signature.OptionField{
		signature.QueryOption("ip", o.IP),
	}
}

// MachineOptions tune machine discovery and checks.
type MachineOptions struct {
	Port *int
	Sync *bool
}

// OptionFields implements signature.Options.
func (o *MachineOptions) OptionFields() []signature.OptionField {
	return []signature.OptionField{
		signature.QueryOption("port", o.Port),
		signature.QueryOption("sync", o.Sync),
	}
}

// IpmiOptions tune IPMI checks.
type IpmiOptions struct {
	Port *int
}

// OptionFields implements signature.Options.
func (o *IpmiOptions) OptionFields() []signature.OptionField {
	return []signature.OptionField{
		signature.QueryOption("port", o.Port),
	}
}

// StoragePoolOptions tune storage pool listings and refreshes.
type StoragePoolOptions struct {
	Sync *bool
}

// OptionFields implements signature.Options.
func (o *StoragePoolOptions) OptionFields() []signature.OptionField {
	return []signature.OptionField{
		signature.QueryOption("sync", o.Sync),
	}
}

// NetworkOptions filter network listings.
type NetworkOptions struct {
	Type *NetworkType
}

// OptionFields implements signature.Options.
func (o *NetworkOptions) OptionFields() []signature.OptionField {
	return []signature.OptionField{
		signature.QueryOption("type", o.Type),
	}
}
