package scheduler

import "github.com/ocean-uhh/cruiseplan/internal/config"

// ExtractActivities returns a leg's ordered activity names. Exactly one
// source contributes: the leg's own sequence wins, then its clusters
// (each cluster preferring its sequence over its stations), then the flat
// station list. The station list also serves as a fallback when clusters
// exist but none of them contributed anything.
func ExtractActivities(leg *config.Leg) []string {
	if len(leg.Sequence) > 0 {
		return entryNames(leg.Sequence)
	}

	if len(leg.Clusters) > 0 {
		var names []string
		for i := range leg.Clusters {
			cl := &leg.Clusters[i]
			if len(cl.Sequence) > 0 {
				names = append(names, entryNames(cl.Sequence)...)
			} else {
				names = append(names, entryNames(cl.Stations)...)
			}
		}
		if len(names) == 0 {
			return entryNames(leg.Stations)
		}
		return names
	}

	return entryNames(leg.Stations)
}

func entryNames(entries []config.SequenceEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}
