package taskfile

import "sort"

// AvailablePhases returns the numbers of phases that can be started
// now: not yet complete, with every declared prerequisite phase
// complete. A phase with no dependency record, or an empty DependsOn
// list, is available as soon as it is incomplete.
//
// The computation is pure and order-independent; the result is sorted
// ascending by phase number regardless of input order. Callers that
// mutate completion state (for example to simulate finishing a phase)
// can re-invoke it directly.
func AvailablePhases(phases []*Phase) []int {
	completed := make(map[int]bool, len(phases))
	for _, ph := range phases {
		if ph.IsComplete {
			completed[ph.Number] = true
		}
	}

	available := []int{}
	for _, ph := range phases {
		if ph.IsComplete {
			continue
		}
		if ph.Dependency != nil && !allComplete(ph.Dependency.DependsOn, completed) {
			continue
		}
		available = append(available, ph.Number)
	}

	sort.Ints(available)
	return available
}

func allComplete(nums []int, completed map[int]bool) bool {
	for _, n := range nums {
		if !completed[n] {
			return false
		}
	}
	return true
}
