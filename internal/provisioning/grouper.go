package provisioning

import "github.com/AzorianSolutions/grandstart/internal/lineimport"

// GroupOptions controls how records are partitioned before sizing.
type GroupOptions struct {
	SubscriberColumn string
	LocationColumn   string
	// UseLocationID splits each subscriber's lines by location.
	UseLocationID bool
}

// GroupLines partitions records by subscriber and, when enabled, by
// location within each subscriber. Groups follow the order in which each
// subscriber (and location) first appears; lines keep their input order.
func GroupLines(records []lineimport.Record, opts GroupOptions) []Group {
	var subscribers []string
	bySubscriber := make(map[string][]lineimport.Record)
	for _, rec := range records {
		id := rec.Get(opts.SubscriberColumn)
		if _, ok := bySubscriber[id]; !ok {
			subscribers = append(subscribers, id)
		}
		bySubscriber[id] = append(bySubscriber[id], rec)
	}

	groups := make([]Group, 0, len(subscribers))
	for _, sub := range subscribers {
		lines := bySubscriber[sub]
		if !opts.UseLocationID {
			groups = append(groups, Group{SubscriberID: sub, Lines: lines})
			continue
		}
		groups = append(groups, splitByLocation(sub, lines, opts.LocationColumn)...)
	}
	return groups
}

func splitByLocation(subscriberID string, lines []lineimport.Record, column string) []Group {
	var order []string
	byLocation := make(map[string][]lineimport.Record)
	for _, rec := range lines {
		loc := rec.Get(column)
		if _, ok := byLocation[loc]; !ok {
			order = append(order, loc)
		}
		byLocation[loc] = append(byLocation[loc], rec)
	}

	groups := make([]Group, 0, len(order))
	for _, loc := range order {
		groups = append(groups, Group{SubscriberID: subscriberID, LocationID: loc, Lines: byLocation[loc]})
	}
	return groups
}

// CountSubscribers returns the number of distinct subscribers in groups.
func CountSubscribers(groups []Group) int {
	seen := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		seen[g.SubscriberID] = struct{}{}
	}
	return len(seen)
}
