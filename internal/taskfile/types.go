package taskfile

import "strings"

// Task is a single checklist item parsed from a task line.
// Tasks are immutable once parsed and owned by their phase.
type Task struct {
	// ID is the task identifier token, e.g. "T001". The grammar accepts
	// any number of digits after the T prefix.
	ID string `json:"id"`

	// Title is the trimmed free text after the ID. It may contain
	// bracketed sub-markers like "[P]" which are preserved verbatim.
	Title string `json:"title"`

	// Completed reports whether the checkbox was marked "[X]".
	Completed bool `json:"completed"`
}

// Phase is a numbered group of tasks parsed from a "## Phase N:" header
// and the task lines beneath it.
type Phase struct {
	// Number is the phase number from the header. Multi-digit numbers
	// are allowed.
	Number int `json:"number"`

	// Title is the header title with any priority parenthetical removed.
	Title string `json:"title"`

	// Priority is the optional "(Priority: P<digit>)" label, e.g. "P1".
	// Empty means the header carried no priority parenthetical.
	Priority string `json:"priority,omitempty"`

	// Tasks holds the phase's tasks in document order.
	Tasks []Task `json:"tasks"`

	// CompletedCount and TotalCount are derived during finalization.
	CompletedCount int `json:"completedCount"`
	TotalCount     int `json:"totalCount"`

	// IsComplete is true iff the phase has at least one task and all of
	// them are completed. A phase with zero tasks is never complete.
	IsComplete bool `json:"isComplete"`

	// Dependency is the phase's dependency record, if the document's
	// dependency section declared one. Nil otherwise.
	Dependency *PhaseDependency `json:"dependency,omitempty"`
}

// finalize computes the derived completion counters for the phase.
func (p *Phase) finalize() {
	completed := 0
	for _, t := range p.Tasks {
		if t.Completed {
			completed++
		}
	}
	p.CompletedCount = completed
	p.TotalCount = len(p.Tasks)
	p.IsComplete = p.TotalCount > 0 && completed == p.TotalCount
}

// PhaseDependency captures the ordering constraints declared for a phase
// in the "Dependencies & Execution Order" section. Records can exist for
// phase numbers that have no matching phase in the main list; such
// placeholder records are reachable only through other phases' edges.
type PhaseDependency struct {
	// Name is the short display name from the parenthetical in the
	// dependency line, e.g. "Setup" in "**Phase 1 (Setup)**:".
	Name string `json:"name"`

	// DependsOn lists the phase numbers this phase waits on, in order
	// of first appearance in the description.
	DependsOn []int `json:"dependsOn"`

	// Blocks lists the phase numbers this phase blocks: the union of
	// explicitly stated targets and reverse edges synthesized from
	// other phases' DependsOn lists. Always sorted ascending and
	// deduplicated.
	Blocks []int `json:"blocks"`

	// CanRunParallelWith lists phase numbers from a
	// "parallel to Phase(s) N/M" phrase.
	CanRunParallelWith []int `json:"canRunParallelWith"`

	// ParallelTasks lists task IDs declared parallelizable within the
	// phase, normalized to three-digit zero-padded form, deduplicated,
	// sorted lexicographically.
	ParallelTasks []string `json:"parallelTasks"`

	// Description is the raw text after the colon on the dependency line.
	Description string `json:"description"`
}

// ParseResult is the immutable snapshot produced by Parse. All derived
// fields are computed once at parse time. The structure is acyclic and
// serializes directly to JSON: Blocks and DependsOn are plain number
// lists, never pointers back into Phases.
type ParseResult struct {
	// SpecFolder is the folder path the document was loaded from, as
	// supplied by the caller.
	SpecFolder string `json:"specFolder"`

	// SpecName is the last path segment of SpecFolder.
	SpecName string `json:"specName"`

	// Phases holds the parsed phases in document order.
	Phases []*Phase `json:"phases"`

	// TotalTasks and CompletedTasks are sums across all phases.
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`

	// NextPhase is the first phase in document order that is not yet
	// complete, or nil if every phase is complete (or there are none).
	NextPhase *Phase `json:"nextPhase,omitempty"`

	// NextTask is the first incomplete task within NextPhase, or nil.
	NextTask *Task `json:"nextTask,omitempty"`

	// AvailablePhases lists the numbers of incomplete phases whose
	// declared prerequisites are all complete, sorted ascending and
	// restricted to phases that exist in Phases.
	AvailablePhases []int `json:"availablePhases"`
}

// SpecName returns the last segment of a spec folder path, splitting on
// both forward and backward slashes. A path ending in a separator, or an
// empty path, yields the empty string. A bare name with no separators is
// returned unchanged.
func SpecName(path string) string {
	if path == "" {
		return ""
	}
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
