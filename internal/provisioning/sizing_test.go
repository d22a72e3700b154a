package provisioning

import "testing"

func TestSize(t *testing.T) {
	tests := []struct {
		lines int
		want  DeviceCounts
	}{
		{0, DeviceCounts{}},
		{1, DeviceCounts{TwoPort: 1}},
		{2, DeviceCounts{TwoPort: 1}},
		{3, DeviceCounts{TwoPort: 2}},
		{4, DeviceCounts{FourPort: 1}},
		{5, DeviceCounts{EightPort: 1}},
		{6, DeviceCounts{EightPort: 1}},
		{7, DeviceCounts{EightPort: 1}},
		{8, DeviceCounts{EightPort: 1}},
		{9, DeviceCounts{EightPort: 1, TwoPort: 1}},
		{12, DeviceCounts{EightPort: 1, FourPort: 1}},
		{13, DeviceCounts{EightPort: 1, FourPort: 1, TwoPort: 1}},
		{15, DeviceCounts{EightPort: 1, FourPort: 1, TwoPort: 2}},
		{16, DeviceCounts{EightPort: 2}},
		{21, DeviceCounts{EightPort: 2, FourPort: 1, TwoPort: 1}},
	}

	for _, tt := range tests {
		if got := Size(tt.lines); got != tt.want {
			t.Errorf("Size(%d) = %+v, want %+v", tt.lines, got, tt.want)
		}
	}
}

func TestSize_NegativeClampedToZero(t *testing.T) {
	if got := Size(-3); got != (DeviceCounts{}) {
		t.Errorf("Size(-3) = %+v, want zero counts", got)
	}
}

func TestSize_Properties(t *testing.T) {
	prevCapacity := 0
	for n := 0; n <= 500; n++ {
		got := Size(n)
		if got.EightPort < 0 || got.FourPort < 0 || got.TwoPort < 0 {
			t.Fatalf("Size(%d) = %+v has negative counts", n, got)
		}
		if got.Capacity() < n {
			t.Fatalf("Size(%d) capacity %d cannot hold the lines", n, got.Capacity())
		}
		if got.Capacity() < prevCapacity {
			t.Fatalf("Size(%d) capacity %d dropped below Size(%d) capacity %d", n, got.Capacity(), n-1, prevCapacity)
		}
		prevCapacity = got.Capacity()
	}
}

func TestDeviceCounts(t *testing.T) {
	c := DeviceCounts{EightPort: 2, FourPort: 1, TwoPort: 3}

	if got := c.Total(); got != 6 {
		t.Errorf("Total() = %d, want 6", got)
	}
	if got := c.Capacity(); got != 26 {
		t.Errorf("Capacity() = %d, want 26", got)
	}
	if got := c.Of(HT814); got != 1 {
		t.Errorf("Of(HT814) = %d, want 1", got)
	}
	if got := c.Of(DeviceClass(3)); got != 0 {
		t.Errorf("Of(3) = %d, want 0", got)
	}
}
