package provisioning

// Counters accumulates run totals. The zero value is ready to use; the
// caller owns it and updates it group by group.
type Counters struct {
	Subscribers int `json:"subscribers"`
	Groups      int `json:"groups"`
	Lines       int `json:"lines"`
	Devices     int `json:"devices"`
	HT818       int `json:"ht818"`
	HT814       int `json:"ht814"`
	HT812       int `json:"ht812"`
}

// AddGroup records one sized group. Groups that need no devices still
// count their lines but not the group itself.
func (c *Counters) AddGroup(lines int, counts DeviceCounts) {
	c.Lines += lines
	if counts.Total() == 0 {
		return
	}
	c.Groups++
	c.Devices += counts.Total()
	c.HT818 += counts.EightPort
	c.HT814 += counts.FourPort
	c.HT812 += counts.TwoPort
}

// Counts returns the per-density device totals.
func (c Counters) Counts() DeviceCounts {
	return DeviceCounts{EightPort: c.HT818, FourPort: c.HT814, TwoPort: c.HT812}
}
