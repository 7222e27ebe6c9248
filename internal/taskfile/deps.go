package taskfile

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// depSectionMarker is the literal header that opens the dependency
// section. Documents without it simply have no dependency data.
const depSectionMarker = "## Dependencies & Execution Order"

// Patterns for the dependency-section grammar.
var (
	phaseDepsHeaderRe = regexp.MustCompile(`^###\s+Phase Dependencies\s*$`)
	parallelHeaderRe  = regexp.MustCompile(`^###\s+Parallel Opportunities\s*$`)

	// depLineRe matches "- **Phase 2 (Core)**: description".
	depLineRe = regexp.MustCompile(`^-\s+\*\*Phase\s+(\d+)\s+\(([^)]*)\)\*\*:\s*(.*)$`)

	// parallelLineRe is the same shape with an optional leading dash,
	// as used under "Parallel Opportunities".
	parallelLineRe = regexp.MustCompile(`^(?:-\s+)?\*\*Phase\s+(\d+)\s+\(([^)]*)\)\*\*:\s*(.*)$`)

	// Phrase extractors applied to the free text after the colon.
	dependsOnAllRe   = regexp.MustCompile(`(?i)depends on all`)
	dependsOnPhaseRe = regexp.MustCompile(`[Dd]epends on Phase (\d+)`)
	blocksAllRe      = regexp.MustCompile(`(?i)blocks all`)
	blocksPhaseRe    = regexp.MustCompile(`[Bb]locks Phase (\d+)`)
	// parallelToRe admits non-numeric segments so a malformed entry in
	// the slash list ("3/x/4") does not truncate the capture; segments
	// are filtered numerically in extractParallelPhases.
	parallelToRe = regexp.MustCompile(`(?i)parallel to Phases? ([\w/]+)`)

	// Task-ID tokens in "Parallel Opportunities" descriptions. Ranges
	// are consumed before bare tokens so "T002-T018" does not also
	// yield standalone T002 and T018 matches.
	taskRangeRe = regexp.MustCompile(`T(\d+)-T(\d+)`)
	taskTokenRe = regexp.MustCompile(`T(\d+)`)
)

// scanState tracks position within the dependency section during the
// single linear pass over the document. Explicit states keep the empty
// and missing-header edge cases auditable.
type scanState int

const (
	scanBeforeSection scanState = iota // marker line not yet seen
	scanInSection                      // after marker, outside both subsections
	scanPhaseDeps                      // inside "### Phase Dependencies"
	scanParallel                       // inside "### Parallel Opportunities"
	scanDone                           // parallel block terminated
)

// edgeStrategy is one extraction rule for dependency or block edges.
// Strategies are tried in order and the first one that recognizes the
// description wins, which gives the "all"-expansion phrases priority
// over specific-phase matching.
type edgeStrategy struct {
	// matches reports whether this strategy applies to the description.
	matches func(desc string) bool
	// extract returns the edge targets. phase is the subject phase
	// number and master the sorted list of every phase number that
	// appears in a well-formed dependency line anywhere in the document.
	extract func(desc string, phase int, master []int) []int
}

var dependsStrategies = []edgeStrategy{
	{
		// "depends on all ..." expands to every known phase below this one.
		matches: dependsOnAllRe.MatchString,
		extract: func(_ string, phase int, master []int) []int {
			return phasesBelow(master, phase)
		},
	},
	{
		matches: dependsOnPhaseRe.MatchString,
		extract: func(desc string, _ int, _ []int) []int {
			return capturedInts(dependsOnPhaseRe, desc)
		},
	},
}

var blocksStrategies = []edgeStrategy{
	{
		// "BLOCKS all ..." expands to every known phase above this one.
		matches: blocksAllRe.MatchString,
		extract: func(_ string, phase int, master []int) []int {
			return phasesAbove(master, phase)
		},
	},
	{
		matches: blocksPhaseRe.MatchString,
		extract: func(desc string, _ int, _ []int) []int {
			return capturedInts(blocksPhaseRe, desc)
		},
	},
}

// ParseDependencySection extracts the "Dependencies & Execution Order"
// section from a task document and returns dependency records keyed by
// phase number. The result can contain records for phase numbers with
// no corresponding phase (the document may constrain phases it never
// lists), and phases without records are simply absent.
//
// The grammar never fails: a missing section yields an empty map, and
// malformed lines or unparseable numeric fragments are skipped.
func ParseDependencySection(text string) map[int]*PhaseDependency {
	deps := make(map[int]*PhaseDependency)
	lines := strings.Split(text, "\n")

	// Master list of every phase number mentioned in a well-formed
	// dependency line anywhere in the document, section boundaries
	// notwithstanding. The "all" expansions range over this list.
	master := masterPhaseList(lines)

	state := scanBeforeSection
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if state == scanBeforeSection {
			if trimmed == depSectionMarker {
				state = scanInSection
			}
			continue
		}
		if state == scanDone {
			break
		}

		// Subsection headers transition from any in-section state.
		switch {
		case phaseDepsHeaderRe.MatchString(trimmed):
			state = scanPhaseDeps
			continue
		case parallelHeaderRe.MatchString(trimmed):
			state = scanParallel
			continue
		}

		switch state {
		case scanPhaseDeps:
			if strings.HasPrefix(trimmed, "##") {
				// Any other header ends the block.
				state = scanInSection
				continue
			}
			parseDependencyLine(trimmed, deps, master)

		case scanParallel:
			if strings.HasPrefix(trimmed, "---") || strings.HasPrefix(trimmed, "##") {
				state = scanDone
				continue
			}
			parseParallelLine(trimmed, deps)
		}
	}

	synthesizeReverseEdges(deps)
	for _, dep := range deps {
		sort.Ints(dep.Blocks)
	}
	return deps
}

// parseDependencyLine handles one line under "### Phase Dependencies".
// Lines that do not match the bolded "Phase N (Name):" shape contribute
// nothing.
func parseDependencyLine(line string, deps map[int]*PhaseDependency, master []int) {
	m := depLineRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	phase := atoi(m[1])
	desc := m[3]

	dep := &PhaseDependency{
		Name:               m[2],
		DependsOn:          applyFirst(dependsStrategies, desc, phase, master),
		Blocks:             dedupeInts(applyFirst(blocksStrategies, desc, phase, master)),
		CanRunParallelWith: extractParallelPhases(desc),
		ParallelTasks:      []string{},
		Description:        desc,
	}
	deps[phase] = dep
}

// parseParallelLine handles one line under "### Parallel Opportunities",
// associating the extracted task IDs with the named phase. A record is
// created on demand when the phase has no dependency line of its own;
// such placeholders carry only the parallel task list.
func parseParallelLine(line string, deps map[int]*PhaseDependency) {
	m := parallelLineRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	phase := atoi(m[1])
	ids := extractParallelTasks(m[3])

	if dep, ok := deps[phase]; ok {
		dep.ParallelTasks = ids
		return
	}
	deps[phase] = &PhaseDependency{
		DependsOn:          []int{},
		Blocks:             []int{},
		CanRunParallelWith: []int{},
		ParallelTasks:      ids,
	}
}

// synthesizeReverseEdges adds each phase to the Blocks list of every
// phase it depends on. Edges are only added to records that already
// exist; a DependsOn target with no record of its own stays invisible.
func synthesizeReverseEdges(deps map[int]*PhaseDependency) {
	for num, dep := range deps {
		for _, target := range dep.DependsOn {
			if t, ok := deps[target]; ok {
				t.Blocks = appendUnique(t.Blocks, num)
			}
		}
	}
}

// masterPhaseList pre-scans every line of the document for well-formed
// dependency lines and returns the sorted, deduplicated phase numbers.
func masterPhaseList(lines []string) []int {
	seen := make(map[int]bool)
	var nums []int
	for _, line := range lines {
		if m := depLineRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			n := atoi(m[1])
			if !seen[n] {
				seen[n] = true
				nums = append(nums, n)
			}
		}
	}
	sort.Ints(nums)
	return nums
}

// extractParallelPhases pulls the slash-separated phase numbers out of
// a "parallel to Phase(s) 2/3" phrase. Non-numeric segments are
// discarded silently.
func extractParallelPhases(desc string) []int {
	out := []int{}
	m := parallelToRe.FindStringSubmatch(desc)
	if m == nil {
		return out
	}
	for _, seg := range strings.Split(m[1], "/") {
		if seg == "" || strings.Trim(seg, "0123456789") != "" {
			continue
		}
		out = append(out, atoi(seg))
	}
	return out
}

// extractParallelTasks collects task IDs from a parallel-opportunities
// description. Range expressions like "T002-T018" are expanded first,
// then remaining bare tokens are appended; the combined list is
// deduplicated and sorted lexicographically.
func extractParallelTasks(desc string) []string {
	type span struct{ start, end int }
	var ranges []span
	seen := make(map[string]bool)
	ids := []string{}

	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, m := range taskRangeRe.FindAllStringSubmatchIndex(desc, -1) {
		ranges = append(ranges, span{m[0], m[1]})
		lo := atoi(desc[m[2]:m[3]])
		hi := atoi(desc[m[4]:m[5]])
		for n := lo; n <= hi; n++ {
			add(padTaskID(n))
		}
	}

	for _, m := range taskTokenRe.FindAllStringSubmatchIndex(desc, -1) {
		within := false
		for _, r := range ranges {
			if m[0] >= r.start && m[1] <= r.end {
				within = true
				break
			}
		}
		if within {
			continue
		}
		add(padTaskID(atoi(desc[m[2]:m[3]])))
	}

	sort.Strings(ids)
	return ids
}

// padTaskID normalizes a task number to the three-digit "T007" form.
// Note the asymmetry with the task-line grammar, which accepts IDs of
// any digit width: a four-digit ID in the task list can never equal a
// zero-padded reference produced here. Both behaviors are kept as-is.
func padTaskID(n int) string {
	return fmt.Sprintf("T%03d", n)
}

// applyFirst runs the ordered strategy list against a description and
// returns the first applicable strategy's extraction, or an empty list.
func applyFirst(strategies []edgeStrategy, desc string, phase int, master []int) []int {
	for _, s := range strategies {
		if s.matches(desc) {
			return s.extract(desc, phase, master)
		}
	}
	return []int{}
}

// capturedInts returns the integer value of the first capture group of
// every match of re in desc, in match order.
func capturedInts(re *regexp.Regexp, desc string) []int {
	out := []int{}
	for _, m := range re.FindAllStringSubmatch(desc, -1) {
		out = append(out, atoi(m[1]))
	}
	return out
}

func phasesBelow(master []int, phase int) []int {
	out := []int{}
	for _, n := range master {
		if n < phase {
			out = append(out, n)
		}
	}
	return out
}

func phasesAbove(master []int, phase int) []int {
	out := []int{}
	for _, n := range master {
		if n > phase {
			out = append(out, n)
		}
	}
	return out
}

func appendUnique(list []int, n int) []int {
	for _, v := range list {
		if v == n {
			return list
		}
	}
	return append(list, n)
}

func dedupeInts(list []int) []int {
	seen := make(map[int]bool, len(list))
	out := []int{}
	for _, n := range list {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
