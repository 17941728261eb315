package wifi

// Merge computes the full new ordering for a preferred-network list: every
// SSID named in desired comes first, in desired's order, followed by every
// remaining SSID from current in its original relative order. The result is
// always a permutation of current; nothing is dropped, duplicated or
// invented. An empty desired returns current unchanged. A desired SSID
// repeated more often than it occurs in current is placed only as many
// times as current holds it.
//
// Callers are expected to have rejected SSIDs not present in current (see
// Missing) before merging.
func Merge(current, desired []string) []string {
	merged := make([]string, 0, len(current))

	available := make(map[string]int, len(current))
	for _, ssid := range current {
		available[ssid]++
	}

	// Track placements by count rather than a set, so a list that happens
	// to contain duplicate SSIDs keeps its extra occurrences.
	placed := make(map[string]int, len(desired))
	for _, ssid := range desired {
		if placed[ssid] >= available[ssid] {
			continue
		}
		merged = append(merged, ssid)
		placed[ssid]++
	}

	for _, ssid := range current {
		if placed[ssid] > 0 {
			placed[ssid]--
			continue
		}
		merged = append(merged, ssid)
	}
	return merged
}

// Missing returns the SSIDs in desired that do not appear in current, in
// the order they were requested, without repeats.
func Missing(current, desired []string) []string {
	known := make(map[string]bool, len(current))
	for _, ssid := range current {
		known[ssid] = true
	}

	var missing []string
	reported := make(map[string]bool)
	for _, ssid := range desired {
		if !known[ssid] && !reported[ssid] {
			missing = append(missing, ssid)
			reported[ssid] = true
		}
	}
	return missing
}

// reorderProfiles arranges current into the given SSID order, consuming one
// profile per occurrence so duplicate SSIDs map onto distinct profiles.
// order must be a permutation of current's SSIDs (Merge guarantees this).
func reorderProfiles(current []Profile, order []string) []Profile {
	unused := make(map[string][]int, len(current))
	for i, p := range current {
		unused[p.SSID] = append(unused[p.SSID], i)
	}

	out := make([]Profile, 0, len(current))
	for _, ssid := range order {
		idxs := unused[ssid]
		if len(idxs) == 0 {
			continue
		}
		out = append(out, current[idxs[0]])
		unused[ssid] = idxs[1:]
	}
	return out
}
