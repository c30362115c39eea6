// Package infrastructure declares the datacenter infrastructure
// administration API: datacenters, racks, remote services, machines,
// storage and networks.
//
// Every operation is a row of a static signature table (see Signatures).
// Entities travel as XML under application/vnd.abiquo.<name>+xml media
// types and fill path placeholders from their own links, so a rack knows
// its datacenter and a storage pool knows its device.
//
//	api, err := infrastructure.New("http://localhost/api", "admin", "xabiquo")
//	dc, err := api.GetDatacenter(ctx, 1)
//	racks, err := api.ListRacks(ctx, dc)
package infrastructure
