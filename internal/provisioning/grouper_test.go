package provisioning

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AzorianSolutions/grandstart/internal/lineimport"
)

func rec(row int, sub, loc string) lineimport.Record {
	return lineimport.Record{Row: row, Fields: map[string]string{"SUBSCRIBER_ID": sub, "LOCATION_ID": loc}}
}

func TestGroupLines(t *testing.T) {
	records := []lineimport.Record{
		rec(2, "S2", "L1"),
		rec(3, "S1", ""),
		rec(4, "S2", "L2"),
		rec(5, "S2", "L1"),
		rec(6, "S1", "L9"),
	}

	type groupRows struct {
		Subscriber string
		Location   string
		Rows       []int
	}
	summarise := func(groups []Group) []groupRows {
		out := make([]groupRows, len(groups))
		for i, g := range groups {
			out[i] = groupRows{g.SubscriberID, g.LocationID, lineRows(g.Lines)}
		}
		return out
	}

	tests := []struct {
		name          string
		useLocationID bool
		want          []groupRows
	}{
		{
			name: "by subscriber",
			want: []groupRows{
				{"S2", "", []int{2, 4, 5}},
				{"S1", "", []int{3, 6}},
			},
		},
		{
			name:          "by subscriber and location",
			useLocationID: true,
			want: []groupRows{
				{"S2", "L1", []int{2, 5}},
				{"S2", "L2", []int{4}},
				{"S1", "", []int{3}},
				{"S1", "L9", []int{6}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupLines(records, GroupOptions{
				SubscriberColumn: "SUBSCRIBER_ID",
				LocationColumn:   "LOCATION_ID",
				UseLocationID:    tt.useLocationID,
			})
			if diff := cmp.Diff(tt.want, summarise(got)); diff != "" {
				t.Errorf("GroupLines() mismatch (-want +got):\n%s", diff)
			}
			if n := CountSubscribers(got); n != 2 {
				t.Errorf("CountSubscribers() = %d, want 2", n)
			}
		})
	}
}

func TestGroupLines_Empty(t *testing.T) {
	if got := GroupLines(nil, GroupOptions{SubscriberColumn: "SUBSCRIBER_ID"}); len(got) != 0 {
		t.Errorf("GroupLines(nil) = %v, want empty", got)
	}
}
