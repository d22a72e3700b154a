package provisioning

import (
	"fmt"

	"github.com/AzorianSolutions/grandstart/internal/lineimport"
)

// DefaultLocation replaces an empty location in device identifiers.
const DefaultLocation = "DEFAULT"

// DeviceID builds the identifier of the seq'th (1-based) device of class c
// for a subscriber location.
func DeviceID(subscriberID, locationID string, c DeviceClass, seq int) string {
	if locationID == "" {
		locationID = DefaultLocation
	}
	return fmt.Sprintf("%s-%s-%s-%d", subscriberID, locationID, c.Tag(), seq)
}

// Allocate partitions the group's lines across the counted devices.
//
// Classes are filled largest first and each device takes up to its full
// capacity from the front of the remaining lines, so input order is kept.
// Devices left without lines are not emitted, and lines beyond the counted
// capacity are not assigned.
func Allocate(group Group, counts DeviceCounts) []Allocation {
	queue := group.Lines
	allocations := make([]Allocation, 0, counts.Total())

	for _, class := range Classes {
		for seq := 1; seq <= counts.Of(class); seq++ {
			if len(queue) == 0 {
				break
			}
			take := min(class.Capacity(), len(queue))
			allocations = append(allocations, Allocation{
				DeviceID: DeviceID(group.SubscriberID, group.LocationID, class, seq),
				Class:    class,
				Lines:    queue[:take:take],
			})
			queue = queue[take:]
		}
	}
	return allocations
}

// Fields returns the field maps of the allocation's lines, in order, ready
// for template rendering.
func (a Allocation) Fields() []map[string]string {
	fields := make([]map[string]string, len(a.Lines))
	for i, rec := range a.Lines {
		fields[i] = rec.Fields
	}
	return fields
}

// Records flattens allocations back into their lines, in allocation order.
func Records(allocations []Allocation) []lineimport.Record {
	var out []lineimport.Record
	for _, a := range allocations {
		out = append(out, a.Lines...)
	}
	return out
}
