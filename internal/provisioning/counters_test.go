package provisioning

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCounters_AddGroup(t *testing.T) {
	var c Counters
	c.AddGroup(13, Size(13))
	c.AddGroup(5, Size(5))
	c.AddGroup(0, Size(0))

	want := Counters{Groups: 2, Lines: 18, Devices: 4, HT818: 2, HT814: 1, HT812: 1}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Counters mismatch (-want +got):\n%s", diff)
	}
	if got := c.Counts(); got != (DeviceCounts{EightPort: 2, FourPort: 1, TwoPort: 1}) {
		t.Errorf("Counts() = %+v", got)
	}
}

func TestDeviceClass(t *testing.T) {
	tests := []struct {
		class    DeviceClass
		capacity int
		tag      string
	}{
		{HT818, 8, "HT818"},
		{HT814, 4, "HT814"},
		{HT812, 2, "HT812"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := tt.class.Capacity(); got != tt.capacity {
				t.Errorf("Capacity() = %d, want %d", got, tt.capacity)
			}
			if got := tt.class.String(); got != tt.tag {
				t.Errorf("String() = %q, want %q", got, tt.tag)
			}
			if text, err := tt.class.MarshalText(); err != nil || string(text) != tt.tag {
				t.Errorf("MarshalText() = %q, %v, want %q", text, err, tt.tag)
			}
		})
	}
}

func TestDeviceClass_Unknown(t *testing.T) {
	if got := DeviceClass(3).String(); got != "DeviceClass(3)" {
		t.Errorf("String() = %q, want DeviceClass(3)", got)
	}
}
