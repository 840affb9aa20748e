package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/gitfleet/internal/execshell"
	"github.com/temirov/gitfleet/internal/fleet/shared"
)

const (
	executorNotConfiguredMessageConstant = "git executor not configured"

	revParseSubcommandConstant         = "rev-parse"
	abbrevRefFlagConstant              = "--abbrev-ref"
	verifyFlagConstant                 = "--verify"
	quietFlagConstant                  = "--quiet"
	headReferenceConstant              = "HEAD"
	statusSubcommandConstant           = "status"
	porcelainFlagConstant              = "--porcelain"
	fetchSubcommandConstant            = "fetch"
	allRemotesFlagConstant             = "--all"
	stageAllFlagConstant               = "--all"
	mergeSubcommandConstant            = "merge"
	fastForwardOnlyFlagConstant        = "--ff-only"
	upstreamReferenceConstant          = "@{u}"
	addSubcommandConstant              = "add"
	commitSubcommandConstant           = "commit"
	messageFlagConstant                = "-m"
	pushSubcommandConstant             = "push"
	forceFlagConstant                  = "--force"
	showRefSubcommandConstant          = "show-ref"
	localBranchReferencePrefixConstant = "refs/heads/"
	branchSubcommandConstant           = "branch"
	deleteFlagConstant                 = "--delete"
	checkoutSubcommandConstant         = "checkout"
	createBranchFlagConstant           = "-b"
	cloneSubcommandConstant            = "clone"
	mergeBaseSubcommandConstant        = "merge-base"
	isAncestorFlagConstant             = "--is-ancestor"
	logSubcommandConstant              = "log"
	logSingleEntryFlagConstant         = "-1"
	logBodyFormatFlagConstant          = "--pretty=%B"
	symbolicRefSubcommandConstant      = "symbolic-ref"
	shortFlagConstant                  = "--short"
	remoteHeadReferencePrefixConstant  = "refs/remotes/"

	notFastForwardIndicatorConstant  = "not possible to fast-forward"
	nothingToCommitIndicatorConstant = "nothing to commit"
	pushRejectedIndicatorConstant    = "[rejected]"
	pushFailedRefsIndicatorConstant  = "failed to push some refs"
	remoteNameSeparatorConstant      = "/"

	localeEnvironmentKeyConstant = "LC_ALL"
	pinnedLocaleValueConstant    = "C"
)

// ErrExecutorNotConfigured indicates the backend was constructed without a git executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// WorktreeStatus reports whether a working tree carries pending changes.
type WorktreeStatus int

// Working tree states.
const (
	WorktreeClean WorktreeStatus = iota
	WorktreeDirty
)

// PushOptions configures branch pushes.
type PushOptions struct {
	Remote string
	Force  bool
}

// GitExecutor exposes the subset of shell execution used by the backend.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryBackend is the capability contract fleet orchestration depends on.
// Every operation addresses one repository; callers may retry safely but the
// backend never retries internally.
type RepositoryBackend interface {
	CurrentBranch(executionContext context.Context, repository shared.RepositoryRef) (string, error)
	Status(executionContext context.Context, repository shared.RepositoryRef) (WorktreeStatus, error)
	DefaultBranch(executionContext context.Context, repository shared.RepositoryRef) (string, error)
	Sync(executionContext context.Context, repository shared.RepositoryRef) error
	CommitAll(executionContext context.Context, repository shared.RepositoryRef, message string) (string, error)
	Push(executionContext context.Context, repository shared.RepositoryRef, branchName string, options PushOptions) error
	HasBranch(executionContext context.Context, repository shared.RepositoryRef, branchName string) (bool, error)
	DeleteBranch(executionContext context.Context, repository shared.RepositoryRef, branchName string) error
	CheckoutBranch(executionContext context.Context, repository shared.RepositoryRef, branchName string) error
	CheckoutNewBranch(executionContext context.Context, repository shared.RepositoryRef, branchName string) error
	Clone(executionContext context.Context, destinationPath string, remoteURL string) error
	IsAheadOfDefault(executionContext context.Context, repository shared.RepositoryRef) (bool, error)
	HeadCommitMessage(executionContext context.Context, repository shared.RepositoryRef) (string, error)
}

// ShellBackend implements RepositoryBackend by shelling out to git.
type ShellBackend struct {
	executor  GitExecutor
	transport TransportConfiguration
}

// NewShellBackend validates the executor and constructs a backend with the provided transport.
func NewShellBackend(executor GitExecutor, transport TransportConfiguration) (*ShellBackend, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &ShellBackend{executor: executor, transport: transport}, nil
}

// CurrentBranch resolves the branch HEAD currently points at.
func (backend *ShellBackend) CurrentBranch(executionContext context.Context, repository shared.RepositoryRef) (string, error) {
	executionResult, executionError := backend.runGit(executionContext, repository.Path, revParseSubcommandConstant, abbrevRefFlagConstant, headReferenceConstant)
	if executionError != nil {
		return "", RepoAccessError{Path: repository.Path, Cause: executionError}
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// Status reports whether the working tree has pending changes. Untracked,
// modified, and staged files all count as dirty.
func (backend *ShellBackend) Status(executionContext context.Context, repository shared.RepositoryRef) (WorktreeStatus, error) {
	executionResult, executionError := backend.runGit(executionContext, repository.Path, statusSubcommandConstant, porcelainFlagConstant)
	if executionError != nil {
		return WorktreeDirty, RepoAccessError{Path: repository.Path, Cause: executionError}
	}
	if len(strings.TrimSpace(executionResult.StandardOutput)) == 0 {
		return WorktreeClean, nil
	}
	return WorktreeDirty, nil
}

// DefaultBranch resolves the default integration branch from the remote HEAD symref.
func (backend *ShellBackend) DefaultBranch(executionContext context.Context, repository shared.RepositoryRef) (string, error) {
	remoteHeadReference := remoteHeadReferencePrefixConstant + backend.transport.remoteName() + "/HEAD"
	executionResult, executionError := backend.runGit(executionContext, repository.Path, symbolicRefSubcommandConstant, shortFlagConstant, remoteHeadReference)
	if executionError != nil {
		return "", RepoAccessError{Path: repository.Path, Cause: executionError}
	}

	// symbolic-ref --short yields "<remote>/<branch>".
	shortReference := strings.TrimSpace(executionResult.StandardOutput)
	if separatorIndex := strings.Index(shortReference, remoteNameSeparatorConstant); separatorIndex >= 0 {
		return shortReference[separatorIndex+1:], nil
	}
	return shortReference, nil
}

// Sync fetches all remotes and fast-forwards the current branch onto its
// upstream. Divergent histories fail with DivergedHistoryError; the backend
// never creates merge commits during fleet synchronization.
func (backend *ShellBackend) Sync(executionContext context.Context, repository shared.RepositoryRef) error {
	if _, fetchError := backend.runGitWithTransport(executionContext, repository.Path, fetchSubcommandConstant, allRemotesFlagConstant); fetchError != nil {
		return fetchError
	}

	_, mergeError := backend.runGit(executionContext, repository.Path, mergeSubcommandConstant, fastForwardOnlyFlagConstant, upstreamReferenceConstant)
	if mergeError == nil {
		return nil
	}

	if failureMentions(mergeError, notFastForwardIndicatorConstant) {
		branchName, branchError := backend.CurrentBranch(executionContext, repository)
		if branchError != nil {
			branchName = headReferenceConstant
		}
		return DivergedHistoryError{Path: repository.Path, Branch: branchName}
	}
	return mergeError
}

// CommitAll stages every working-tree change and commits it with the provided
// message, returning the new commit identifier.
func (backend *ShellBackend) CommitAll(executionContext context.Context, repository shared.RepositoryRef, message string) (string, error) {
	if _, headError := backend.runGit(executionContext, repository.Path, revParseSubcommandConstant, verifyFlagConstant, quietFlagConstant, headReferenceConstant); headError != nil {
		// rev-parse --verify exits 1 for an unborn HEAD; any other failure
		// means the path is not a usable repository.
		failedCommand := execshell.CommandFailedError{}
		if errors.As(headError, &failedCommand) && failedCommand.Result.ExitCode == 1 {
			return "", NoHeadError{Path: repository.Path}
		}
		return "", RepoAccessError{Path: repository.Path, Cause: headError}
	}

	if _, addError := backend.runGit(executionContext, repository.Path, addSubcommandConstant, stageAllFlagConstant); addError != nil {
		return "", addError
	}

	if _, commitError := backend.runGit(executionContext, repository.Path, commitSubcommandConstant, messageFlagConstant, message); commitError != nil {
		if failureMentions(commitError, nothingToCommitIndicatorConstant) {
			return "", NothingToCommitError{Path: repository.Path}
		}
		return "", commitError
	}

	commitResult, revisionError := backend.runGit(executionContext, repository.Path, revParseSubcommandConstant, headReferenceConstant)
	if revisionError != nil {
		return "", revisionError
	}
	return strings.TrimSpace(commitResult.StandardOutput), nil
}

// Push publishes the named branch to the configured remote.
func (backend *ShellBackend) Push(executionContext context.Context, repository shared.RepositoryRef, branchName string, options PushOptions) error {
	remoteName := options.Remote
	if len(remoteName) == 0 {
		remoteName = backend.transport.remoteName()
	}

	pushArguments := []string{pushSubcommandConstant}
	if options.Force {
		pushArguments = append(pushArguments, forceFlagConstant)
	}
	pushArguments = append(pushArguments, remoteName, branchName)

	_, pushError := backend.runGitWithTransport(executionContext, repository.Path, pushArguments...)
	if pushError == nil {
		return nil
	}
	if !options.Force && (failureMentions(pushError, pushRejectedIndicatorConstant) || failureMentions(pushError, pushFailedRefsIndicatorConstant)) {
		return PushRejectedError{Path: repository.Path, Branch: branchName, Remote: remoteName, Cause: pushError}
	}
	return pushError
}

// HasBranch reports whether the named local branch exists.
func (backend *ShellBackend) HasBranch(executionContext context.Context, repository shared.RepositoryRef, branchName string) (bool, error) {
	_, verificationError := backend.runGit(executionContext, repository.Path, showRefSubcommandConstant, verifyFlagConstant, quietFlagConstant, localBranchReferencePrefixConstant+branchName)
	if verificationError == nil {
		return true, nil
	}

	// show-ref exits 1 for a missing reference, which is not a failure here.
	failedCommand := execshell.CommandFailedError{}
	if errors.As(verificationError, &failedCommand) && failedCommand.Result.ExitCode == 1 {
		return false, nil
	}
	return false, verificationError
}

// DeleteBranch removes the named local branch. Missing, checked-out, and
// unmerged branches surface the underlying git rejection; the backend never
// discards unmerged work during fleet cleanup.
func (backend *ShellBackend) DeleteBranch(executionContext context.Context, repository shared.RepositoryRef, branchName string) error {
	_, deletionError := backend.runGit(executionContext, repository.Path, branchSubcommandConstant, deleteFlagConstant, branchName)
	return deletionError
}

// CheckoutBranch switches the working tree to an existing branch.
func (backend *ShellBackend) CheckoutBranch(executionContext context.Context, repository shared.RepositoryRef, branchName string) error {
	_, checkoutError := backend.runGit(executionContext, repository.Path, checkoutSubcommandConstant, branchName)
	return checkoutError
}

// CheckoutNewBranch creates the branch at HEAD and switches to it.
func (backend *ShellBackend) CheckoutNewBranch(executionContext context.Context, repository shared.RepositoryRef, branchName string) error {
	branchExists, existenceError := backend.HasBranch(executionContext, repository, branchName)
	if existenceError != nil {
		return existenceError
	}
	if branchExists {
		return BranchExistsError{Path: repository.Path, Branch: branchName}
	}

	_, checkoutError := backend.runGit(executionContext, repository.Path, checkoutSubcommandConstant, createBranchFlagConstant, branchName)
	return checkoutError
}

// Clone materializes the remote repository at the destination path.
func (backend *ShellBackend) Clone(executionContext context.Context, destinationPath string, remoteURL string) error {
	commandDetails := execshell.CommandDetails{
		Arguments:            []string{cloneSubcommandConstant, remoteURL, destinationPath},
		EnvironmentVariables: backend.commandEnvironment(true),
	}
	if _, cloneFailure := backend.executor.ExecuteGit(executionContext, commandDetails); cloneFailure != nil {
		return CloneError{URL: remoteURL, Destination: destinationPath, Cause: cloneFailure}
	}
	return nil
}

// IsAheadOfDefault reports whether HEAD is strictly ahead of the default
// branch: the identifiers differ and the default branch commit is reachable
// from HEAD. Diverged histories report false.
func (backend *ShellBackend) IsAheadOfDefault(executionContext context.Context, repository shared.RepositoryRef) (bool, error) {
	defaultBranchName, defaultBranchError := backend.DefaultBranch(executionContext, repository)
	if defaultBranchError != nil {
		return false, defaultBranchError
	}

	headResult, headError := backend.runGit(executionContext, repository.Path, revParseSubcommandConstant, headReferenceConstant)
	if headError != nil {
		return false, NoHeadError{Path: repository.Path}
	}

	defaultResult, defaultRevisionError := backend.runGit(executionContext, repository.Path, revParseSubcommandConstant, localBranchReferencePrefixConstant+defaultBranchName)
	if defaultRevisionError != nil {
		return false, defaultRevisionError
	}

	headRevision := strings.TrimSpace(headResult.StandardOutput)
	defaultRevision := strings.TrimSpace(defaultResult.StandardOutput)
	if headRevision == defaultRevision {
		return false, nil
	}

	// Identifier inequality alone does not prove an ahead relationship; the
	// default branch commit must be an ancestor of HEAD.
	_, ancestryError := backend.runGit(executionContext, repository.Path, mergeBaseSubcommandConstant, isAncestorFlagConstant, defaultRevision, headRevision)
	if ancestryError == nil {
		return true, nil
	}

	failedCommand := execshell.CommandFailedError{}
	if errors.As(ancestryError, &failedCommand) && failedCommand.Result.ExitCode == 1 {
		return false, nil
	}
	return false, ancestryError
}

// HeadCommitMessage returns the full message of the commit HEAD points at.
func (backend *ShellBackend) HeadCommitMessage(executionContext context.Context, repository shared.RepositoryRef) (string, error) {
	logResult, logError := backend.runGit(executionContext, repository.Path, logSubcommandConstant, logSingleEntryFlagConstant, logBodyFormatFlagConstant)
	if logError != nil {
		return "", RepoAccessError{Path: repository.Path, Cause: logError}
	}
	return strings.TrimSpace(logResult.StandardOutput), nil
}

func (backend *ShellBackend) runGit(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: backend.commandEnvironment(false),
	}
	return backend.executor.ExecuteGit(executionContext, commandDetails)
}

func (backend *ShellBackend) runGitWithTransport(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: backend.commandEnvironment(true),
	}
	return backend.executor.ExecuteGit(executionContext, commandDetails)
}

// commandEnvironment pins the message locale so failure classification keys on
// untranslated git output; transport variables may override it when a caller
// explicitly supplies LC_ALL.
func (backend *ShellBackend) commandEnvironment(includeTransport bool) map[string]string {
	environment := map[string]string{localeEnvironmentKeyConstant: pinnedLocaleValueConstant}
	if includeTransport {
		for variableName, variableValue := range backend.transport.EnvironmentVariables {
			environment[variableName] = variableValue
		}
	}
	return environment
}

// failureMentions reports whether a command failure's captured output contains
// the provided indicator, case-insensitively.
func failureMentions(failure error, indicator string) bool {
	failedCommand := execshell.CommandFailedError{}
	if !errors.As(failure, &failedCommand) {
		return false
	}
	loweredIndicator := strings.ToLower(indicator)
	combinedOutput := strings.ToLower(failedCommand.Result.StandardOutput + failedCommand.Result.StandardError)
	return strings.Contains(combinedOutput, loweredIndicator)
}
