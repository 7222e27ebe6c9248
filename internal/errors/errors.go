// Package errors provides centralized error definitions for taskstat.
// It defines sentinel errors for spec-folder discovery and git
// detection, plus semantic error types with context, so callers can
// import a single package for all error handling.
//
// Parsing itself never produces errors: the taskfile grammars are
// tolerant by contract and return partial results for any input. The
// errors here belong to the layers around the parser, which read files
// and invoke git.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Spec-discovery sentinel errors
var (
	// ErrNoSpecFolder indicates that no spec folder could be located.
	ErrNoSpecFolder = New("no spec folder found")
	// ErrTasksFileNotFound indicates that the spec folder has no tasks file.
	ErrTasksFileNotFound = New("tasks file not found")
	// ErrNoSpecsDir indicates that the specs directory does not exist.
	ErrNoSpecsDir = New("specs directory not found")
)

// Git-related sentinel errors
var (
	// ErrNotGitRepository indicates that the directory is not a git repository.
	ErrNotGitRepository = New("not a git repository")
	// ErrGitNotInstalled indicates that the git binary is not in PATH.
	ErrGitNotInstalled = New("git is not installed or not in PATH")
	// ErrDetachedHead indicates that HEAD does not point at a branch.
	ErrDetachedHead = New("detached HEAD, no branch name available")
)

// NotFoundError indicates that a named resource could not be located.
type NotFoundError struct {
	// Resource is the kind of thing that was missing, e.g. "spec folder".
	Resource string
	// Name identifies the specific instance, e.g. the folder path.
	Name string
	// cause is the underlying error, if any.
	cause error
}

// NewNotFoundError creates a NotFoundError for the given resource.
func NewNotFoundError(resource, name string) *NotFoundError {
	return &NotFoundError{Resource: resource, Name: name}
}

// WithCause attaches an underlying error and returns the receiver.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.Name)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Unwrap returns the underlying error.
func (e *NotFoundError) Unwrap() error {
	return e.cause
}

// GitError indicates a failure running or interpreting a git command.
type GitError struct {
	// Op is the logical operation, e.g. "current branch".
	Op string
	// Output is the combined command output, kept for diagnostics.
	Output string
	// cause is the underlying error.
	cause error
}

// NewGitError creates a GitError wrapping the underlying error.
func NewGitError(op string, cause error) *GitError {
	return &GitError{Op: op, cause: cause}
}

// WithOutput attaches command output and returns the receiver.
func (e *GitError) WithOutput(output string) *GitError {
	e.Output = output
	return e
}

func (e *GitError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("git %s: %v", e.Op, e.cause)
	}
	return fmt.Sprintf("git %s failed", e.Op)
}

// Unwrap returns the underlying error.
func (e *GitError) Unwrap() error {
	return e.cause
}

// Is lets a GitError match the git sentinel its cause carries.
func (e *GitError) Is(target error) bool {
	return errors.Is(e.cause, target)
}
