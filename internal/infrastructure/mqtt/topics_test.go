package mqtt

import "testing"

func TestTopics(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"latest default prefix", Topics{}.LatestRun(), "grandstart/runs/latest"},
		{"latest custom prefix", Topics{Prefix: "/isp/provisioning/"}.LatestRun(), "isp/provisioning/runs/latest"},
		{"run summary", Topics{Prefix: "gs"}.RunSummary("abc"), "gs/runs/abc/summary"},
		{"device", Topics{}.DeviceGenerated("S100", "S100-DEFAULT-HT818-1"), "grandstart/devices/S100/S100-DEFAULT-HT818-1"},
		{"device sanitised", Topics{}.DeviceGenerated("a/b", "x+#"), "grandstart/devices/a_b/x__"},
		{"device empty subscriber", Topics{}.DeviceGenerated("", "d"), "grandstart/devices/_/d"},
		{"all devices", Topics{}.AllDevices(), "grandstart/devices/#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
