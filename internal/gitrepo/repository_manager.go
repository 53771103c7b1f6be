package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/temirov/openrepo/internal/execshell"
)

const (
	gitVersionSubcommandConstant            = "version"
	gitRevParseSubcommandConstant           = "rev-parse"
	gitSymbolicFullNameFlagConstant         = "--symbolic-full-name"
	gitUpstreamReferenceConstant            = "@{upstream}"
	gitRemoteSubcommandConstant             = "remote"
	gitRemoteGetURLSubcommandConstant       = "get-url"
	remoteTrackingReferencePrefixConstant   = "refs/remotes/"
	referenceSegmentSeparatorConstant       = "/"
	gitExecutorNotConfiguredMessageConstant = "git executor not configured"
	upstreamNotConfiguredMessageConstant    = "no upstream tracking branch configured"
	remoteNameRequiredMessageConstant       = "remote name required"
	remoteLookupErrorTemplateConstant       = "unable to read remote %s: %w"
	gitVersionRenderTemplateConstant        = "%d.%d.%d"
)

var gitVersionPattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`)

// Errors reported by RepositoryManager operations.
var (
	ErrGitExecutorNotConfigured = errors.New(gitExecutorNotConfiguredMessageConstant)
	ErrUpstreamNotConfigured    = errors.New(upstreamNotConfiguredMessageConstant)
	ErrRemoteNameRequired       = errors.New(remoteNameRequiredMessageConstant)
)

// GitExecutor exposes the subset of shell execution used by repository queries.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitVersion captures the semantic version reported by the git binary.
type GitVersion struct {
	Major int
	Minor int
	Patch int
}

// String renders the version as major.minor.patch.
func (version GitVersion) String() string {
	return fmt.Sprintf(gitVersionRenderTemplateConstant, version.Major, version.Minor, version.Patch)
}

// RepositoryManager performs read-only remote and upstream queries through the git binary.
type RepositoryManager struct {
	gitExecutor    GitExecutor
	commandTimeout time.Duration
}

// NewRepositoryManager constructs a RepositoryManager around the provided executor.
func NewRepositoryManager(gitExecutor GitExecutor) (*RepositoryManager, error) {
	return NewRepositoryManagerWithTimeout(gitExecutor, 0)
}

// NewRepositoryManagerWithTimeout constructs a RepositoryManager that bounds every git invocation with the supplied timeout.
func NewRepositoryManagerWithTimeout(gitExecutor GitExecutor, commandTimeout time.Duration) (*RepositoryManager, error) {
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{gitExecutor: gitExecutor, commandTimeout: commandTimeout}, nil
}

// UpstreamRemoteName resolves the remote tracked by the current branch.
//
// Any git failure (no upstream configured, detached HEAD, missing binary)
// collapses into ErrUpstreamNotConfigured; callers never fall back to a
// default remote name.
func (manager *RepositoryManager) UpstreamRemoteName(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitSymbolicFullNameFlagConstant, gitUpstreamReferenceConstant},
		WorkingDirectory: repositoryPath,
		Timeout:          manager.commandTimeout,
	})
	if executionError != nil {
		return "", ErrUpstreamNotConfigured
	}

	trackingReference := strings.TrimSpace(executionResult.StandardOutput)
	trackingReference = strings.TrimPrefix(trackingReference, remoteTrackingReferencePrefixConstant)
	remoteName, _, _ := strings.Cut(trackingReference, referenceSegmentSeparatorConstant)
	if len(remoteName) == 0 {
		return "", ErrUpstreamNotConfigured
	}
	return remoteName, nil
}

// RemoteURL fetches the raw URI configured for the named remote.
func (manager *RepositoryManager) RemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	trimmedRemoteName := strings.TrimSpace(remoteName)
	if len(trimmedRemoteName) == 0 {
		return "", ErrRemoteNameRequired
	}

	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, trimmedRemoteName},
		WorkingDirectory: repositoryPath,
		Timeout:          manager.commandTimeout,
	})
	if executionError != nil {
		return "", fmt.Errorf(remoteLookupErrorTemplateConstant, trimmedRemoteName, executionError)
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// GitVersion reports the version of the git binary, or absence when it cannot be determined.
func (manager *RepositoryManager) GitVersion(executionContext context.Context) (GitVersion, bool) {
	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitVersionSubcommandConstant},
		Timeout:   manager.commandTimeout,
	})
	if executionError != nil {
		return GitVersion{}, false
	}

	versionMatch := gitVersionPattern.FindStringSubmatch(executionResult.StandardOutput)
	if versionMatch == nil {
		return GitVersion{}, false
	}

	majorComponent, _ := strconv.Atoi(versionMatch[1])
	minorComponent, _ := strconv.Atoi(versionMatch[2])
	patchComponent, _ := strconv.Atoi(versionMatch[3])
	return GitVersion{Major: majorComponent, Minor: minorComponent, Patch: patchComponent}, true
}

// ResolveWebURL resolves the browsable web URL for the repository at repositoryPath.
//
// When remoteName is empty the remote tracked by the current branch's
// upstream is used. Each step's failure short-circuits to absence; git
// failures never escape to the caller.
func (manager *RepositoryManager) ResolveWebURL(executionContext context.Context, repositoryPath string, remoteName string) (string, bool) {
	resolvedRemoteName := strings.TrimSpace(remoteName)
	if len(resolvedRemoteName) == 0 {
		upstreamRemoteName, upstreamError := manager.UpstreamRemoteName(executionContext, repositoryPath)
		if upstreamError != nil {
			return "", false
		}
		resolvedRemoteName = upstreamRemoteName
	}

	remoteURI, remoteError := manager.RemoteURL(executionContext, repositoryPath, resolvedRemoteName)
	if remoteError != nil {
		return "", false
	}

	return WebURLFromRemote(remoteURI)
}
