// Package render formats parse results for the terminal. It is a thin
// layer over the taskfile model: all progress and availability data is
// computed by the parser, never here.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/taskstat/taskstat/internal/taskfile"
	"github.com/taskstat/taskstat/internal/util"
)

const barWidth = 20

// Renderer renders parse results with a theme and width budget.
type Renderer struct {
	theme Theme
	width int
}

// New creates a Renderer. Unknown theme names fall back to the default
// theme; widths below 40 are clamped to 40.
func New(themeName string, width int) *Renderer {
	if width < 40 {
		width = 40
	}
	return &Renderer{theme: ThemeByName(themeName), width: width}
}

// Status renders the summary box, every phase with its progress bar
// and task checklist, and the availability line.
func (r *Renderer) Status(result *taskfile.ParseResult) string {
	var b strings.Builder

	b.WriteString(r.summaryBox(result))
	b.WriteString("\n")

	available := make(map[int]bool, len(result.AvailablePhases))
	for _, n := range result.AvailablePhases {
		available[n] = true
	}

	for _, ph := range result.Phases {
		b.WriteString("\n")
		b.WriteString(r.phaseLine(ph, available[ph.Number]))
		b.WriteString("\n")
		for _, task := range ph.Tasks {
			b.WriteString(r.taskLine(task))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(r.availabilityLine(result))
	b.WriteString("\n")
	return b.String()
}

// Next renders the first actionable phase and task, or a completion
// notice when nothing is left.
func (r *Renderer) Next(result *taskfile.ParseResult) string {
	if result.NextPhase == nil {
		return r.theme.Done.Render("All phases complete.") + "\n"
	}

	var b strings.Builder
	ph := result.NextPhase
	b.WriteString(r.theme.Title.Render(fmt.Sprintf("Phase %d: %s", ph.Number, ph.Title)))
	if ph.Priority != "" {
		b.WriteString(" " + r.theme.Subtitle.Render("("+ph.Priority+")"))
	}
	b.WriteString("\n")

	if result.NextTask != nil {
		b.WriteString(fmt.Sprintf("  next: %s %s\n",
			r.theme.Available.Render(result.NextTask.ID),
			util.TruncateANSI(result.NextTask.Title, r.width-10)))
	} else {
		b.WriteString(r.theme.Muted.Render("  (phase has no tasks)") + "\n")
	}
	return b.String()
}

// Deps renders the dependency table: one block per phase that has a
// dependency record, in phase-number order.
func (r *Renderer) Deps(result *taskfile.ParseResult) string {
	var withDeps []*taskfile.Phase
	for _, ph := range result.Phases {
		if ph.Dependency != nil {
			withDeps = append(withDeps, ph)
		}
	}
	if len(withDeps) == 0 {
		return r.theme.Muted.Render("No dependency data declared.") + "\n"
	}
	sort.Slice(withDeps, func(i, j int) bool {
		return withDeps[i].Number < withDeps[j].Number
	})

	var b strings.Builder
	for _, ph := range withDeps {
		dep := ph.Dependency
		name := dep.Name
		if name == "" {
			name = ph.Title
		}
		b.WriteString(r.theme.Title.Render(fmt.Sprintf("Phase %d (%s)", ph.Number, name)))
		b.WriteString("\n")
		b.WriteString(r.edgeLine("depends on", dep.DependsOn))
		b.WriteString(r.edgeLine("blocks", dep.Blocks))
		b.WriteString(r.edgeLine("parallel with", dep.CanRunParallelWith))
		if len(dep.ParallelTasks) > 0 {
			b.WriteString(fmt.Sprintf("  parallel tasks: %s\n",
				r.theme.Muted.Render(strings.Join(dep.ParallelTasks, " "))))
		}
	}
	return b.String()
}

// edgeLine renders one labeled edge list, or nothing when the list is
// empty.
func (r *Renderer) edgeLine(label string, nums []int) string {
	if len(nums) == 0 {
		return ""
	}
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("  %s: %s\n", label, strings.Join(parts, ", "))
}

func (r *Renderer) summaryBox(result *taskfile.ParseResult) string {
	name := result.SpecName
	if name == "" {
		name = "tasks"
	}

	lines := []string{
		r.theme.Title.Render(name),
		fmt.Sprintf("%s  %s / %s done",
			r.progressBar(result.CompletedTasks, result.TotalTasks),
			r.theme.Done.Render(fmt.Sprintf("%d", result.CompletedTasks)),
			util.Pluralize(result.TotalTasks, "task", "tasks")),
		r.theme.Subtitle.Render(util.Pluralize(len(result.Phases), "phase", "phases")),
	}
	return r.theme.Box.Width(r.width - 2).Render(strings.Join(lines, "\n"))
}

func (r *Renderer) phaseLine(ph *taskfile.Phase, available bool) string {
	marker := " "
	style := r.theme.Pending
	switch {
	case ph.IsComplete:
		marker = "✓"
		style = r.theme.Done
	case available:
		marker = "▶"
		style = r.theme.Available
	}

	header := fmt.Sprintf("%s Phase %d: %s", marker, ph.Number, ph.Title)
	if ph.Priority != "" {
		header += " (" + ph.Priority + ")"
	}
	return fmt.Sprintf("%s  %s %d/%d",
		style.Render(util.TruncateANSI(header, r.width-barWidth-10)),
		r.progressBar(ph.CompletedCount, ph.TotalCount),
		ph.CompletedCount, ph.TotalCount)
}

func (r *Renderer) taskLine(task taskfile.Task) string {
	box := "[ ]"
	style := r.theme.Pending
	if task.Completed {
		box = "[x]"
		style = r.theme.Done
	}
	line := fmt.Sprintf("  %s %s %s", box, task.ID, task.Title)
	return style.Render(util.TruncateANSI(line, r.width-2))
}

func (r *Renderer) availabilityLine(result *taskfile.ParseResult) string {
	if len(result.AvailablePhases) == 0 {
		if result.NextPhase == nil {
			return r.theme.Done.Render("All phases complete.")
		}
		return r.theme.Blocked.Render("No phase is currently unblocked.")
	}

	nums := make([]string, len(result.AvailablePhases))
	for i, n := range result.AvailablePhases {
		nums[i] = fmt.Sprintf("%d", n)
	}
	return r.theme.Available.Render("Available now: phase " + strings.Join(nums, ", "))
}

// progressBar renders a fixed-width bar. A phase with zero tasks gets
// an empty bar, matching its never-complete status.
func (r *Renderer) progressBar(completed, total int) string {
	filled := 0
	if total > 0 {
		filled = completed * barWidth / total
	}
	return r.theme.BarFill.Render(strings.Repeat("█", filled)) +
		r.theme.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
}
