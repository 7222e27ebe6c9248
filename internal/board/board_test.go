package board

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTasks(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestModelViewShowsParsedState(t *testing.T) {
	path := writeTasks(t, "## Phase 1: Setup\n- [X] T001 Done\n- [ ] T002 Pending\n")
	m := NewModel(path, "specs/demo", "mono", nil, nil)

	view := m.View()
	assert.Contains(t, view, "demo")
	assert.Contains(t, view, "1 / 2 tasks done")
	assert.Contains(t, view, "q quit")
}

func TestModelRefreshKeyRereadsFile(t *testing.T) {
	path := writeTasks(t, "## Phase 1: Setup\n- [ ] T001 Pending\n")
	m := NewModel(path, "specs/demo", "mono", nil, nil)
	assert.Contains(t, m.View(), "0 / 1 task done")

	require.NoError(t, os.WriteFile(path, []byte("## Phase 1: Setup\n- [X] T001 Done\n"), 0644))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Contains(t, updated.View(), "1 / 1 task done")
}

func TestModelFileChangedMsgReloads(t *testing.T) {
	path := writeTasks(t, "## Phase 1: Setup\n- [ ] T001 Pending\n")
	m := NewModel(path, "specs/demo", "mono", nil, nil)

	require.NoError(t, os.WriteFile(path, []byte("## Phase 1: Setup\n- [X] T001 Done\n"), 0644))

	updated, _ := m.Update(fileChangedMsg{})
	assert.Contains(t, updated.View(), "1 / 1 task done")
}

func TestModelQuitKeys(t *testing.T) {
	path := writeTasks(t, "## Phase 1: Setup\n")
	m := NewModel(path, "", "mono", nil, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd, "q should quit")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd, "esc should quit")
}

func TestModelMissingFile(t *testing.T) {
	m := NewModel(filepath.Join(t.TempDir(), "absent.md"), "", "mono", nil, nil)
	view := m.View()
	assert.Contains(t, view, "cannot read")
}

func TestModelResizeRerenders(t *testing.T) {
	path := writeTasks(t, "## Phase 1: Setup\n- [ ] T001 Pending\n")
	m := NewModel(path, "specs/demo", "mono", nil, nil)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 24})
	assert.NotEmpty(t, updated.View())
}
