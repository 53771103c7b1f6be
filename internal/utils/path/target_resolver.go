package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const tildeSymbolConstant = "~"

var tildePrefixes = []string{
	tildeSymbolConstant + "/",
	tildeSymbolConstant + string(os.PathSeparator),
}

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// WorkingDirectoryProvider resolves the process working directory.
type WorkingDirectoryProvider func() (string, error)

// TargetPathResolver normalizes user-supplied target paths before repository discovery.
type TargetPathResolver struct {
	homeDirectoryProvider    HomeDirectoryProvider
	workingDirectoryProvider WorkingDirectoryProvider
	homeDirectory            string
	homeDirectoryError       error
	initializationGuard      sync.Once
}

// NewTargetPathResolver constructs a TargetPathResolver using operating system lookups.
func NewTargetPathResolver() *TargetPathResolver {
	return NewTargetPathResolverWithProviders(os.UserHomeDir, os.Getwd)
}

// NewTargetPathResolverWithProviders constructs a TargetPathResolver with custom providers.
func NewTargetPathResolverWithProviders(homeProvider HomeDirectoryProvider, workingDirectoryProvider WorkingDirectoryProvider) *TargetPathResolver {
	if homeProvider == nil {
		homeProvider = os.UserHomeDir
	}
	if workingDirectoryProvider == nil {
		workingDirectoryProvider = os.Getwd
	}
	return &TargetPathResolver{
		homeDirectoryProvider:    homeProvider,
		workingDirectoryProvider: workingDirectoryProvider,
	}
}

// Resolve trims the candidate path, expands home directory shortcuts, and
// converts the result to an absolute path. An empty candidate resolves to the
// process working directory.
func (resolver *TargetPathResolver) Resolve(candidatePath string) (string, error) {
	trimmedCandidate := strings.TrimSpace(candidatePath)
	if len(trimmedCandidate) == 0 {
		workingDirectory, workingDirectoryError := resolver.workingDirectoryProvider()
		if workingDirectoryError != nil {
			return "", workingDirectoryError
		}
		return filepath.Clean(workingDirectory), nil
	}

	expandedCandidate := resolver.expandHomeShortcut(trimmedCandidate)

	absoluteCandidate, absoluteError := filepath.Abs(expandedCandidate)
	if absoluteError != nil {
		return "", absoluteError
	}

	return absoluteCandidate, nil
}

func (resolver *TargetPathResolver) expandHomeShortcut(candidatePath string) string {
	if !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	resolvedHomeDirectory := resolver.resolveHomeDirectory()
	if len(resolvedHomeDirectory) == 0 {
		return candidatePath
	}

	if candidatePath == tildeSymbolConstant {
		return resolvedHomeDirectory
	}

	for _, tildePrefix := range tildePrefixes {
		if strings.HasPrefix(candidatePath, tildePrefix) {
			return filepath.Join(resolvedHomeDirectory, strings.TrimPrefix(candidatePath, tildePrefix))
		}
	}

	return candidatePath
}

func (resolver *TargetPathResolver) resolveHomeDirectory() string {
	resolver.initializationGuard.Do(func() {
		resolver.homeDirectory, resolver.homeDirectoryError = resolver.homeDirectoryProvider()
	})
	if resolver.homeDirectoryError != nil {
		return ""
	}
	return resolver.homeDirectory
}
