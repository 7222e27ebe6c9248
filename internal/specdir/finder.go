package specdir

import (
	"os"
	"path/filepath"
	"time"

	"github.com/taskstat/taskstat/internal/errors"
	"github.com/taskstat/taskstat/internal/logging"
)

// Finder resolves the spec folder to parse.
type Finder struct {
	// Root is the working directory discovery starts from.
	Root string
	// SpecsDir is the directory holding one folder per spec,
	// relative to Root (typically "specs").
	SpecsDir string
	// TasksFile is the task document filename inside each spec
	// folder (typically "tasks.md").
	TasksFile string

	executor CommandExecutor
	logger   *logging.Logger
}

// NewFinder creates a Finder rooted at root using the real git CLI.
func NewFinder(root, specsDir, tasksFile string) *Finder {
	return &Finder{
		Root:      root,
		SpecsDir:  specsDir,
		TasksFile: tasksFile,
		executor:  CLICommandExecutor{},
		logger:    logging.NopLogger(),
	}
}

// WithExecutor replaces the command executor. Primarily for tests.
func (f *Finder) WithExecutor(executor CommandExecutor) *Finder {
	f.executor = executor
	return f
}

// WithLogger attaches a logger for discovery tracing.
func (f *Finder) WithLogger(logger *logging.Logger) *Finder {
	f.logger = logger
	return f
}

// Find returns the spec folder containing the task document.
//
// Resolution order:
//  1. explicit, when non-empty: used as-is (relative to Root unless
//     absolute) and required to contain the tasks file.
//  2. the current git branch: specs/<branch> when that folder has a
//     tasks file. Git failures fall through silently; branch-based
//     lookup is a convenience, not a requirement.
//  3. the most recently modified spec folder that has a tasks file.
func (f *Finder) Find(explicit string) (string, error) {
	if explicit != "" {
		folder := explicit
		if !filepath.IsAbs(folder) {
			folder = filepath.Join(f.Root, folder)
		}
		if !f.hasTasksFile(folder) {
			return "", errors.NewNotFoundError("tasks file", f.TasksPath(folder)).
				WithCause(errors.ErrTasksFileNotFound)
		}
		return folder, nil
	}

	specsRoot := filepath.Join(f.Root, f.SpecsDir)
	if info, err := os.Stat(specsRoot); err != nil || !info.IsDir() {
		return "", errors.NewNotFoundError("specs directory", specsRoot).
			WithCause(errors.ErrNoSpecsDir)
	}

	if branch, err := CurrentBranch(f.executor, f.Root); err == nil {
		candidate := filepath.Join(specsRoot, branch)
		if f.hasTasksFile(candidate) {
			f.logger.Debug("spec folder matched branch", "branch", branch, "folder", candidate)
			return candidate, nil
		}
		f.logger.Debug("no spec folder for branch", "branch", branch)
	} else {
		f.logger.Debug("branch detection unavailable", "error", err)
	}

	if folder := f.mostRecent(specsRoot); folder != "" {
		return folder, nil
	}

	return "", errors.NewNotFoundError("spec folder", specsRoot).
		WithCause(errors.ErrNoSpecFolder)
}

// TasksPath returns the task document path inside a spec folder.
func (f *Finder) TasksPath(folder string) string {
	return filepath.Join(folder, f.TasksFile)
}

func (f *Finder) hasTasksFile(folder string) bool {
	info, err := os.Stat(f.TasksPath(folder))
	return err == nil && !info.IsDir()
}

// mostRecent returns the spec folder with the newest tasks file, or
// the empty string when none qualify.
func (f *Finder) mostRecent(specsRoot string) string {
	entries, err := os.ReadDir(specsRoot)
	if err != nil {
		return ""
	}

	var best string
	var bestTime time.Time
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folder := filepath.Join(specsRoot, entry.Name())
		info, err := os.Stat(f.TasksPath(folder))
		if err != nil || info.IsDir() {
			continue
		}
		if best == "" || info.ModTime().After(bestTime) {
			best = folder
			bestTime = info.ModTime()
		}
	}
	return best
}
