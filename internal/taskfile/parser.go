// Package taskfile parses phased Markdown task checklists into a typed
// model and derives progress and availability views over the phases.
//
// The recognized grammar is deliberately narrow: "## Phase N: Title"
// headers, "- [X] T001 ..." task lines, and the free-text
// "## Dependencies & Execution Order" section. Anything else in the
// document is ignored, never rejected; parsing cannot fail for any
// string input.
package taskfile

import (
	"regexp"
	"strings"
)

// Line patterns for the phase/task grammar.
var (
	// phaseHeaderRe matches "## Phase 3: Some Title" with an optional
	// trailing "(Priority: P1)" parenthetical captured separately by
	// priorityRe. Multi-digit phase numbers are allowed.
	phaseHeaderRe = regexp.MustCompile(`^##\s+Phase\s+(\d+):\s+(.+)$`)

	// priorityRe matches the optional priority parenthetical inside a
	// phase header title.
	priorityRe = regexp.MustCompile(`\(Priority:\s*(P\d)\)`)

	// taskLineRe matches "- [X] T001 Title" or "- [ ] T001 Title".
	// Lines missing the spacing, the brackets, or the T-prefixed ID
	// do not match and are skipped silently.
	taskLineRe = regexp.MustCompile(`^-\s+\[([X ])\]\s+(T\d+)\s+(.+)$`)
)

// Parse scans a task document and returns the complete parse result.
// It never fails: malformed lines are skipped, a missing dependency
// section means no dependency data, and the empty string yields an
// empty result. Repeated parses of the same input are idempotent.
//
// specFolder is recorded verbatim on the result; the spec name is
// derived from its last path segment.
func Parse(text, specFolder string) *ParseResult {
	result := &ParseResult{
		SpecFolder: specFolder,
		SpecName:   SpecName(specFolder),
		Phases:     parsePhases(text),
	}

	// Attach dependency records by phase number. Placeholder records
	// for numbers with no matching phase stay out of the phase list;
	// they remain visible only through other phases' edge lists.
	deps := ParseDependencySection(text)
	byNumber := make(map[int]*Phase, len(result.Phases))
	for _, ph := range result.Phases {
		byNumber[ph.Number] = ph
		result.TotalTasks += ph.TotalCount
		result.CompletedTasks += ph.CompletedCount
	}
	for num, dep := range deps {
		if ph, ok := byNumber[num]; ok {
			ph.Dependency = dep
		}
	}

	// First incomplete phase in document order, and its first
	// incomplete task.
	for _, ph := range result.Phases {
		if ph.IsComplete {
			continue
		}
		result.NextPhase = ph
		for i := range ph.Tasks {
			if !ph.Tasks[i].Completed {
				result.NextTask = &ph.Tasks[i]
				break
			}
		}
		break
	}

	// The availability engine already excludes complete phases; the
	// existence filter matters because dependency records can name
	// phases the document never declares.
	for _, num := range AvailablePhases(result.Phases) {
		if _, ok := byNumber[num]; ok {
			result.AvailablePhases = append(result.AvailablePhases, num)
		}
	}
	if result.AvailablePhases == nil {
		result.AvailablePhases = []int{}
	}

	return result
}

// parsePhases performs the single top-to-bottom scan that builds phases
// and their tasks from the line grammar.
func parsePhases(text string) []*Phase {
	phases := []*Phase{}
	var current *Phase

	for _, line := range strings.Split(text, "\n") {
		if m := phaseHeaderRe.FindStringSubmatch(line); m != nil {
			current = &Phase{
				Number: atoi(m[1]),
				Tasks:  []Task{},
			}
			title := m[2]
			if pm := priorityRe.FindStringSubmatch(title); pm != nil {
				current.Priority = pm[1]
				title = priorityRe.ReplaceAllString(title, "")
			}
			current.Title = strings.TrimSpace(title)
			phases = append(phases, current)
			continue
		}

		if m := taskLineRe.FindStringSubmatch(line); m != nil {
			if current == nil {
				// Task line before any phase header: nothing to
				// attach it to, so it is dropped.
				continue
			}
			current.Tasks = append(current.Tasks, Task{
				ID:        m[2],
				Title:     strings.TrimSpace(m[3]),
				Completed: m[1] == "X",
			})
		}
	}

	for _, ph := range phases {
		ph.finalize()
	}
	return phases
}

// atoi converts a digits-only string already validated by a regex
// capture group. Overflow aside, it cannot fail; invalid input maps
// to whatever partial value was accumulated, matching the tolerant
// failure policy of the rest of the grammar.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
