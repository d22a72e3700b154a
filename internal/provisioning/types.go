package provisioning

import (
	"fmt"

	"github.com/AzorianSolutions/grandstart/internal/lineimport"
)

// DeviceClass identifies an adapter model by its port density.
type DeviceClass int

// Supported device classes, in allocation order.
const (
	HT818 DeviceClass = 8
	HT814 DeviceClass = 4
	HT812 DeviceClass = 2
)

// Classes lists the device classes largest first, the order in which lines
// are allocated.
var Classes = []DeviceClass{HT818, HT814, HT812}

// Capacity returns the number of lines one device of the class holds.
func (c DeviceClass) Capacity() int {
	return int(c)
}

// Tag returns the model name used in device identifiers.
func (c DeviceClass) Tag() string {
	switch c {
	case HT818:
		return "HT818"
	case HT814:
		return "HT814"
	case HT812:
		return "HT812"
	default:
		return fmt.Sprintf("DeviceClass(%d)", int(c))
	}
}

// String implements fmt.Stringer.
func (c DeviceClass) String() string {
	return c.Tag()
}

// MarshalText encodes the class as its model name.
func (c DeviceClass) MarshalText() ([]byte, error) {
	return []byte(c.Tag()), nil
}

// DeviceCounts holds how many devices of each density one group needs.
type DeviceCounts struct {
	EightPort int `json:"ht818"`
	FourPort  int `json:"ht814"`
	TwoPort   int `json:"ht812"`
}

// Of returns the count for class c.
func (d DeviceCounts) Of(c DeviceClass) int {
	switch c {
	case HT818:
		return d.EightPort
	case HT814:
		return d.FourPort
	case HT812:
		return d.TwoPort
	default:
		return 0
	}
}

// Total returns the number of devices across all densities.
func (d DeviceCounts) Total() int {
	return d.EightPort + d.FourPort + d.TwoPort
}

// Capacity returns the number of lines the counted devices can hold.
func (d DeviceCounts) Capacity() int {
	return d.EightPort*HT818.Capacity() + d.FourPort*HT814.Capacity() + d.TwoPort*HT812.Capacity()
}

// Group is the ordered set of lines sized and allocated together: one
// subscriber, or one subscriber location when location grouping is enabled.
type Group struct {
	SubscriberID string
	// LocationID is empty when the group spans all of a subscriber's
	// locations or the lines carry no location.
	LocationID string
	Lines      []lineimport.Record
}

// Allocation assigns an ordered run of lines to one device.
type Allocation struct {
	DeviceID string
	Class    DeviceClass
	// Lines is a sub-slice of the group's lines; len(Lines) never exceeds
	// Class.Capacity().
	Lines []lineimport.Record
}
