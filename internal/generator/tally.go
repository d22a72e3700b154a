package generator

import (
	"github.com/AzorianSolutions/grandstart/internal/infrastructure/logging"
	"github.com/AzorianSolutions/grandstart/internal/provisioning"
)

// subscriberTally logs sizing per subscriber at debug and, when lines are
// split by location, per location at trace. Groups of one subscriber must
// arrive consecutively, as GroupLines returns them.
type subscriberTally struct {
	log     *logging.Logger
	current string
	started bool
	lines   int
	counts  provisioning.DeviceCounts
}

func newSubscriberTally(log *logging.Logger) *subscriberTally {
	return &subscriberTally{log: log}
}

func (t *subscriberTally) add(g provisioning.Group, counts provisioning.DeviceCounts, byLocation bool) {
	if t.started && g.SubscriberID != t.current {
		t.flush()
	}
	t.current = g.SubscriberID
	t.started = true

	if byLocation && counts.Total() > 0 {
		location := g.LocationID
		if location == "" {
			location = provisioning.DefaultLocation
		}
		t.log.Trace("location sized",
			"subscriber", g.SubscriberID,
			"location", location,
			"lines", len(g.Lines),
			"devices", counts.Total(),
			"ht812", counts.TwoPort,
			"ht814", counts.FourPort,
			"ht818", counts.EightPort,
		)
	}

	t.lines += len(g.Lines)
	t.counts.EightPort += counts.EightPort
	t.counts.FourPort += counts.FourPort
	t.counts.TwoPort += counts.TwoPort
}

// flush logs the pending subscriber and resets the tally.
func (t *subscriberTally) flush() {
	if !t.started {
		return
	}
	t.log.Debug("subscriber sized",
		"subscriber", t.current,
		"lines", t.lines,
		"devices", t.counts.Total(),
		"ht812", t.counts.TwoPort,
		"ht814", t.counts.FourPort,
		"ht818", t.counts.EightPort,
	)
	t.started = false
	t.lines = 0
	t.counts = provisioning.DeviceCounts{}
}
