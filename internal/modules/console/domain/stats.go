package domain

// StatTotal is present in every stats map and always equals the size of the full collection.
const StatTotal = "total"

// Stats holds named counters derived from the complete collection.
type Stats map[string]int

// StatsReducer derives domain counters from the complete collection.
type StatsReducer[T any] func(all []T) Stats

func (s Stats) Clone() Stats {
	cloned := make(Stats, len(s))
	for key, value := range s {
		cloned[key] = value
	}
	return cloned
}

func (s Stats) Total() int { return s[StatTotal] }

// CountStats evaluates every counter against all. Counters that match nothing are
// reported as zero so the dashboard always renders the same cards.
func CountStats[T any](all []T, counters map[string]func(T) bool) Stats {
	stats := make(Stats, len(counters)+1)
	for key := range counters {
		stats[key] = 0
	}
	for _, item := range all {
		for key, matches := range counters {
			if matches(item) {
				stats[key]++
			}
		}
	}
	stats[StatTotal] = len(all)
	return stats
}

func computeStats[T any](all []T, reducer StatsReducer[T]) Stats {
	var stats Stats
	if reducer != nil {
		stats = reducer(all)
	}
	if stats == nil {
		stats = Stats{}
	}
	stats[StatTotal] = len(all)
	return stats
}
