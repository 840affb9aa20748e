package gitrepo

import "fmt"

const (
	repoAccessErrorTemplateConstant      = "%s is not an accessible git repository: %v"
	divergedHistoryErrorTemplateConstant = "%s: branch %s has diverged from upstream and cannot fast-forward"
	nothingToCommitErrorTemplateConstant = "%s: working tree is clean, nothing to commit"
	noHeadErrorTemplateConstant          = "%s: repository has no commits yet"
	pushRejectedErrorTemplateConstant    = "%s: push of %s to %s was rejected"
	branchExistsErrorTemplateConstant    = "%s: branch %s already exists"
	cloneErrorTemplateConstant           = "cloning %s into %s failed: %v"
)

// RepoAccessError indicates a catalog path that is not a usable git repository.
type RepoAccessError struct {
	Path  string
	Cause error
}

// Error describes the inaccessible repository.
func (accessError RepoAccessError) Error() string {
	return fmt.Sprintf(repoAccessErrorTemplateConstant, accessError.Path, accessError.Cause)
}

// Unwrap exposes the underlying failure.
func (accessError RepoAccessError) Unwrap() error {
	return accessError.Cause
}

// DivergedHistoryError indicates local and upstream histories both hold unique commits.
type DivergedHistoryError struct {
	Path   string
	Branch string
}

// Error describes the divergence.
func (divergedError DivergedHistoryError) Error() string {
	return fmt.Sprintf(divergedHistoryErrorTemplateConstant, divergedError.Path, divergedError.Branch)
}

// NothingToCommitError indicates a commit request against a clean working tree.
type NothingToCommitError struct {
	Path string
}

// Error describes the empty commit attempt.
func (commitError NothingToCommitError) Error() string {
	return fmt.Sprintf(nothingToCommitErrorTemplateConstant, commitError.Path)
}

// NoHeadError indicates a repository whose HEAD cannot be resolved.
type NoHeadError struct {
	Path string
}

// Error describes the missing head commit.
func (headError NoHeadError) Error() string {
	return fmt.Sprintf(noHeadErrorTemplateConstant, headError.Path)
}

// PushRejectedError indicates the remote refused a non-forced ref update.
type PushRejectedError struct {
	Path   string
	Branch string
	Remote string
	Cause  error
}

// Error describes the rejected push.
func (pushError PushRejectedError) Error() string {
	return fmt.Sprintf(pushRejectedErrorTemplateConstant, pushError.Path, pushError.Branch, pushError.Remote)
}

// Unwrap exposes the underlying failure.
func (pushError PushRejectedError) Unwrap() error {
	return pushError.Cause
}

// BranchExistsError indicates branch creation collided with an existing branch.
type BranchExistsError struct {
	Path   string
	Branch string
}

// Error describes the collision.
func (existsError BranchExistsError) Error() string {
	return fmt.Sprintf(branchExistsErrorTemplateConstant, existsError.Path, existsError.Branch)
}

// CloneError indicates a clone failed on network or destination-path grounds.
type CloneError struct {
	URL         string
	Destination string
	Cause       error
}

// Error describes the failed clone.
func (cloneError CloneError) Error() string {
	return fmt.Sprintf(cloneErrorTemplateConstant, cloneError.URL, cloneError.Destination, cloneError.Cause)
}

// Unwrap exposes the underlying failure.
func (cloneError CloneError) Unwrap() error {
	return cloneError.Cause
}
