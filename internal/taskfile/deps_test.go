package taskfile

import (
	"reflect"
	"testing"
)

// depDoc wraps dependency-section content in a minimal document.
func depDoc(body string) string {
	return "## Phase 1: Setup\n\n## Dependencies & Execution Order\n\n" + body
}

func TestParseDependencySectionMissing(t *testing.T) {
	docs := map[string]string{
		"empty document":      "",
		"no marker":           "## Phase 1: Setup\n- [ ] T001 Task\n",
		"marker-like heading": "## Dependencies\n- **Phase 1 (Setup)**: Blocks Phase 2\n",
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			deps := ParseDependencySection(doc)
			if len(deps) != 0 {
				t.Errorf("expected empty map, got %d entries", len(deps))
			}
		})
	}
}

func TestParseDependencySectionBlocksAll(t *testing.T) {
	doc := depDoc(`### Phase Dependencies
- **Phase 1 (Setup)**: BLOCKS all other phases
- **Phase 2 (Core)**: Depends on Phase 1
- **Phase 3 (Polish)**: Depends on Phase 2
`)
	deps := ParseDependencySection(doc)

	dep1, ok := deps[1]
	if !ok {
		t.Fatal("no record for phase 1")
	}
	if want := []int{2, 3}; !reflect.DeepEqual(dep1.Blocks, want) {
		t.Errorf("phase 1 Blocks = %v, want %v", dep1.Blocks, want)
	}
	if dep1.Name != "Setup" {
		t.Errorf("phase 1 Name = %q, want %q", dep1.Name, "Setup")
	}
}

func TestParseDependencySectionDependsOnAll(t *testing.T) {
	doc := depDoc(`### Phase Dependencies
- **Phase 1 (Setup)**: No prerequisites
- **Phase 2 (Core)**: Depends on Phase 1
- **Phase 4 (Ship)**: depends on ALL previous phases, Depends on Phase 9
`)
	deps := ParseDependencySection(doc)

	dep4 := deps[4]
	if dep4 == nil {
		t.Fatal("no record for phase 4")
	}
	// The "depends on all" expansion short-circuits the specific-phase
	// extraction; the "Depends on Phase 9" fragment must be ignored.
	if want := []int{1, 2}; !reflect.DeepEqual(dep4.DependsOn, want) {
		t.Errorf("phase 4 DependsOn = %v, want %v", dep4.DependsOn, want)
	}
}

func TestParseDependencySectionSpecificEdges(t *testing.T) {
	doc := depDoc(`### Phase Dependencies
- **Phase 1 (Setup)**: Blocks Phase 3, Blocks Phase 2
- **Phase 2 (Models)**: Depends on Phase 1, runs parallel to Phases 3/4
- **Phase 3 (API)**: depends on Phase 1 and Depends on Phase 2
`)
	deps := ParseDependencySection(doc)

	dep2 := deps[2]
	if want := []int{1}; !reflect.DeepEqual(dep2.DependsOn, want) {
		t.Errorf("phase 2 DependsOn = %v, want %v", dep2.DependsOn, want)
	}
	if want := []int{3, 4}; !reflect.DeepEqual(dep2.CanRunParallelWith, want) {
		t.Errorf("phase 2 CanRunParallelWith = %v, want %v", dep2.CanRunParallelWith, want)
	}

	// Lowercase "depends" is accepted; order of first appearance kept.
	dep3 := deps[3]
	if want := []int{1, 2}; !reflect.DeepEqual(dep3.DependsOn, want) {
		t.Errorf("phase 3 DependsOn = %v, want %v", dep3.DependsOn, want)
	}

	// Explicit blocks are deduplicated, sorted ascending, and merged
	// with synthesized reverse edges.
	dep1 := deps[1]
	if want := []int{2, 3}; !reflect.DeepEqual(dep1.Blocks, want) {
		t.Errorf("phase 1 Blocks = %v, want %v", dep1.Blocks, want)
	}
}

func TestParseDependencySectionReverseEdgeLaw(t *testing.T) {
	doc := depDoc(`### Phase Dependencies
- **Phase 1 (Setup)**: Foundational work
- **Phase 2 (Core)**: Depends on Phase 1
- **Phase 3 (Polish)**: Depends on Phase 1, Depends on Phase 2
`)
	deps := ParseDependencySection(doc)

	for num, dep := range deps {
		for _, target := range dep.DependsOn {
			rec, ok := deps[target]
			if !ok {
				continue
			}
			found := false
			for _, b := range rec.Blocks {
				if b == num {
					found = true
				}
			}
			if !found {
				t.Errorf("phase %d depends on %d but %d's Blocks = %v", num, target, target, rec.Blocks)
			}
		}
	}
}

func TestParseDependencySectionReverseEdgeNeedsRecord(t *testing.T) {
	// Phase 2 depends on phase 9, which has no record of its own. No
	// placeholder is synthesized for it.
	doc := depDoc(`### Phase Dependencies
- **Phase 2 (Core)**: Depends on Phase 9
`)
	deps := ParseDependencySection(doc)

	if _, ok := deps[9]; ok {
		t.Error("unexpected synthesized record for phase 9")
	}
	if want := []int{9}; !reflect.DeepEqual(deps[2].DependsOn, want) {
		t.Errorf("phase 2 DependsOn = %v, want %v", deps[2].DependsOn, want)
	}
}

func TestParseDependencySectionMalformedLines(t *testing.T) {
	doc := depDoc(`### Phase Dependencies
- Phase 1 (Setup): not bolded
- **Phase (NoNumber)**: missing number
random prose
- **Phase 2 (Core)**: Depends on Phase 1
`)
	deps := ParseDependencySection(doc)

	if len(deps) != 1 {
		t.Fatalf("expected 1 record, got %d", len(deps))
	}
	if _, ok := deps[2]; !ok {
		t.Error("well-formed sibling line did not parse")
	}
}

func TestParseDependencySectionParallelTasks(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "range expansion",
			line: "**Phase 1 (Setup)**: T002-T018 can mostly run in parallel",
			want: rangeIDs(2, 18),
		},
		{
			name: "bare tokens with dedupe",
			line: "**Phase 1 (Setup)**: T005, T003 and T005 again",
			want: []string{"T003", "T005"},
		},
		{
			name: "range plus bare token",
			line: "- **Phase 1 (Setup)**: T001-T003 then T010",
			want: []string{"T001", "T002", "T003", "T010"},
		},
		{
			name: "short IDs zero-padded",
			line: "**Phase 1 (Setup)**: T2-T4 and T7",
			want: []string{"T002", "T003", "T004", "T007"},
		},
		{
			name: "no task tokens",
			line: "**Phase 1 (Setup)**: nothing parallel here",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := depDoc("### Parallel Opportunities\n" + tt.line + "\n")
			deps := ParseDependencySection(doc)
			dep := deps[1]
			if dep == nil {
				t.Fatal("no record for phase 1")
			}
			if !reflect.DeepEqual(dep.ParallelTasks, tt.want) {
				t.Errorf("ParallelTasks = %v, want %v", dep.ParallelTasks, tt.want)
			}
		})
	}
}

func TestParseDependencySectionParallelPlaceholder(t *testing.T) {
	doc := depDoc(`### Phase Dependencies
- **Phase 1 (Setup)**: Blocks Phase 2

### Parallel Opportunities
**Phase 1 (Setup)**: T001-T002 in parallel
**Phase 5 (Extras)**: T050 alone
`)
	deps := ParseDependencySection(doc)

	// Phase 1 already had a record; only ParallelTasks is attached.
	if deps[1].Name != "Setup" || len(deps[1].Blocks) == 0 {
		t.Error("attaching parallel tasks clobbered the existing record")
	}
	if want := []string{"T001", "T002"}; !reflect.DeepEqual(deps[1].ParallelTasks, want) {
		t.Errorf("phase 1 ParallelTasks = %v, want %v", deps[1].ParallelTasks, want)
	}

	// Phase 5 gets a placeholder with only ParallelTasks populated.
	dep5 := deps[5]
	if dep5 == nil {
		t.Fatal("no placeholder for phase 5")
	}
	if dep5.Name != "" || len(dep5.DependsOn) != 0 || len(dep5.Blocks) != 0 {
		t.Errorf("placeholder not empty: %+v", dep5)
	}
	if want := []string{"T050"}; !reflect.DeepEqual(dep5.ParallelTasks, want) {
		t.Errorf("phase 5 ParallelTasks = %v, want %v", dep5.ParallelTasks, want)
	}
}

func TestParseDependencySectionBoundaries(t *testing.T) {
	doc := depDoc(`### Phase Dependencies
- **Phase 1 (Setup)**: Blocks Phase 2

### Notes
- **Phase 3 (Stray)**: Depends on Phase 1

### Parallel Opportunities
**Phase 1 (Setup)**: T001 alone

---

**Phase 2 (After)**: T010 past the separator
`)
	deps := ParseDependencySection(doc)

	// The "### Notes" header ends the phase-dependencies block, so the
	// stray line contributes no record. It still counts toward the
	// master list used by the "all" expansions.
	if _, ok := deps[3]; ok {
		t.Error("line outside the Phase Dependencies block produced a record")
	}

	// The "---" separator ends the parallel block.
	if _, ok := deps[2]; ok {
		t.Error("parallel line after the separator produced a record")
	}
	if want := []string{"T001"}; !reflect.DeepEqual(deps[1].ParallelTasks, want) {
		t.Errorf("phase 1 ParallelTasks = %v, want %v", deps[1].ParallelTasks, want)
	}
}

func TestParseDependencySectionMasterListSpansDocument(t *testing.T) {
	// The master list is collected from the whole document, so a
	// "BLOCKS all" expansion sees phase numbers mentioned in
	// well-formed dependency lines outside the section too.
	doc := `Overview prose.
- **Phase 7 (Future)**: mentioned early

## Dependencies & Execution Order

### Phase Dependencies
- **Phase 1 (Setup)**: BLOCKS all other phases
`
	deps := ParseDependencySection(doc)
	if want := []int{7}; !reflect.DeepEqual(deps[1].Blocks, want) {
		t.Errorf("phase 1 Blocks = %v, want %v", deps[1].Blocks, want)
	}
}

func TestParseDependencySectionParallelPhaseSegments(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want []int
	}{
		{"malformed middle segment", "can run parallel to Phases 3/x/4", []int{3, 4}},
		{"malformed trailing segment", "parallel to Phases 3/x", []int{3}},
		{"trailing prose not captured", "parallel to Phases 3/4 once setup lands", []int{3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := depDoc("### Phase Dependencies\n- **Phase 2 (Core)**: " + tt.desc + "\n")
			deps := ParseDependencySection(doc)
			if !reflect.DeepEqual(deps[2].CanRunParallelWith, tt.want) {
				t.Errorf("CanRunParallelWith = %v, want %v", deps[2].CanRunParallelWith, tt.want)
			}
		})
	}
}

func TestParseDependencySectionSingularParallelPhrase(t *testing.T) {
	doc := depDoc(`### Phase Dependencies
- **Phase 3 (API)**: parallel to Phase 4
`)
	deps := ParseDependencySection(doc)
	if want := []int{4}; !reflect.DeepEqual(deps[3].CanRunParallelWith, want) {
		t.Errorf("CanRunParallelWith = %v, want %v", deps[3].CanRunParallelWith, want)
	}
}

// rangeIDs builds the expected expansion of a T<lo>-T<hi> range.
func rangeIDs(lo, hi int) []string {
	ids := []string{}
	for n := lo; n <= hi; n++ {
		ids = append(ids, padTaskID(n))
	}
	return ids
}
