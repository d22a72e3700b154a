// Package provisioning decides how many analog telephone adapters a group of
// subscriber lines needs and which lines land on which device.
//
// Three Grandstream models are supported, identified by port density:
//
//   - HT818: 8 FXS ports
//   - HT814: 4 FXS ports
//   - HT812: 2 FXS ports
//
// # Pipeline
//
//	groups := provisioning.GroupLines(records, provisioning.GroupOptions{
//	    SubscriberColumn: "SUBSCRIBER_ID",
//	    LocationColumn:   "LOCATION_ID",
//	    UseLocationID:    true,
//	})
//	var counters provisioning.Counters
//	for _, g := range groups {
//	    counts := provisioning.Size(len(g.Lines))
//	    allocations := provisioning.Allocate(g, counts)
//	    counters.AddGroup(len(g.Lines), counts)
//	    ...
//	}
//
// Every function in this package is pure apart from Counters, which the
// caller owns and updates sequentially.
package provisioning
