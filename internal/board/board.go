// Package board provides a live terminal view of a task document. It
// re-parses and re-renders whenever the file changes on disk; the file
// itself is never modified.
package board

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/taskstat/taskstat/internal/logging"
	"github.com/taskstat/taskstat/internal/render"
	"github.com/taskstat/taskstat/internal/taskfile"
)

// fileChangedMsg signals that the watched tasks file was written.
type fileChangedMsg struct{}

// watchErrMsg carries a watcher failure; the board keeps the last
// good render and shows the error in the footer.
type watchErrMsg struct{ err error }

// Model is the bubbletea model for the live board.
type Model struct {
	tasksPath  string
	specFolder string
	theme      string
	renderer   *render.Renderer
	result     *taskfile.ParseResult
	watcher    *fsnotify.Watcher
	logger     *logging.Logger
	watchErr   error
	width      int
}

// NewModel creates a board over the given tasks file. The watcher may
// be nil, in which case the board is static (refresh with "r").
func NewModel(tasksPath, specFolder, theme string, watcher *fsnotify.Watcher, logger *logging.Logger) Model {
	if logger == nil {
		logger = logging.NopLogger()
	}
	m := Model{
		tasksPath:  tasksPath,
		specFolder: specFolder,
		theme:      theme,
		renderer:   render.New(theme, 100),
		watcher:    watcher,
		logger:     logger,
		width:      100,
	}
	m.reload()
	return m
}

// reload re-reads and re-parses the tasks file. Read failures leave
// the previous result in place; the parser itself cannot fail.
func (m *Model) reload() {
	data, err := os.ReadFile(m.tasksPath)
	if err != nil {
		m.watchErr = err
		return
	}
	m.watchErr = nil
	m.result = taskfile.Parse(string(data), m.specFolder)
	m.logger.Debug("board reloaded",
		"tasks", m.result.TotalTasks, "completed", m.result.CompletedTasks)
}

// Init starts the file watcher, if any.
func (m Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForChange(m.watcher)
}

// waitForChange blocks on the watcher until the tasks file is written
// or the watcher errors out.
func waitForChange(watcher *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return watchErrMsg{err: fmt.Errorf("watcher closed")}
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					return fileChangedMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return watchErrMsg{err: fmt.Errorf("watcher closed")}
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

// Update handles watcher and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.renderer = render.New(m.theme, msg.Width)
		return m, nil

	case fileChangedMsg:
		m.reload()
		if m.watcher == nil {
			return m, nil
		}
		return m, waitForChange(m.watcher)

	case watchErrMsg:
		m.watchErr = msg.err
		return m, nil
	}

	return m, nil
}

// View renders the current parse result plus a footer.
func (m Model) View() string {
	if m.result == nil {
		if m.watchErr != nil {
			return fmt.Sprintf("cannot read %s: %v\n", m.tasksPath, m.watchErr)
		}
		return "loading...\n"
	}

	view := m.renderer.Status(m.result)
	footer := "q quit · r refresh"
	if m.watchErr != nil {
		footer = fmt.Sprintf("watch error: %v · %s", m.watchErr, footer)
	}
	return view + footer + "\n"
}

// Run starts the interactive board and blocks until the user quits.
func Run(tasksPath, specFolder, theme string, logger *logging.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(tasksPath); err != nil {
		return fmt.Errorf("watching %s: %w", tasksPath, err)
	}

	model := NewModel(tasksPath, specFolder, theme, watcher, logger)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
