// Package specdir locates the spec folder whose task document should
// be parsed. Discovery is git-aware: when the repository is on a
// branch named after a spec folder, that folder wins; otherwise the
// most recently modified spec folder is used.
package specdir

import (
	"os/exec"
	"strings"

	"github.com/taskstat/taskstat/internal/errors"
)

// CommandExecutor abstracts command execution for testability.
// This allows tests to mock git commands without executing them.
type CommandExecutor interface {
	// Run executes a command in dir and returns combined output.
	Run(dir string, name string, args ...string) ([]byte, error)
}

// CLICommandExecutor executes commands using os/exec.
type CLICommandExecutor struct{}

// Run executes a command and returns combined output.
func (CLICommandExecutor) Run(dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// CurrentBranch returns the branch name HEAD points at in dir, using
// the provided executor.
func CurrentBranch(executor CommandExecutor, dir string) (string, error) {
	out, err := executor.Run(dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", classifyGitError(err, out)
	}

	branch := strings.TrimSpace(string(out))
	if branch == "" || branch == "HEAD" {
		// rev-parse prints "HEAD" when detached.
		return "", errors.NewGitError("current branch", errors.ErrDetachedHead)
	}
	return branch, nil
}

// classifyGitError converts a failed git invocation into a domain
// error, keeping the command output for diagnostics.
func classifyGitError(err error, output []byte) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return errors.NewGitError("current branch", errors.ErrGitNotInstalled)
	}

	outStr := strings.ToLower(string(output))
	if strings.Contains(outStr, "not a git repository") {
		return errors.NewGitError("current branch", errors.ErrNotGitRepository).
			WithOutput(string(output))
	}

	return errors.NewGitError("current branch", err).WithOutput(string(output))
}
