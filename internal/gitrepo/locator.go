package gitrepo

import (
	"os"
	"path/filepath"
	"strings"
)

const gitMetadataEntryNameConstant = ".git"

// WorktreeLocator determines Git working-tree membership using only the filesystem.
type WorktreeLocator struct{}

// NewWorktreeLocator constructs a locator backed by the operating system filesystem.
func NewWorktreeLocator() *WorktreeLocator {
	return &WorktreeLocator{}
}

// IsInsideRepository reports whether the supplied path lies inside a Git working tree.
//
// The path is resolved to its canonical form and the locator walks ancestor
// directories looking for a .git entry. Both directories (full checkouts) and
// regular files (worktree pointers) count. A visited set guards against
// symlink cycles; the walk never invokes the git binary.
func (locator *WorktreeLocator) IsInsideRepository(candidatePath string) bool {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return false
	}

	currentPath := canonicalizePath(trimmedPath)
	visitedDirectories := map[string]struct{}{}

	for {
		if len(currentPath) == 0 {
			return false
		}
		if _, alreadyVisited := visitedDirectories[currentPath]; alreadyVisited {
			return false
		}
		visitedDirectories[currentPath] = struct{}{}

		if hasGitMetadataEntry(currentPath) {
			return true
		}

		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			return false
		}
		currentPath = parentPath
	}
}

func canonicalizePath(candidatePath string) string {
	resolvedPath, resolveError := filepath.EvalSymlinks(candidatePath)
	if resolveError != nil {
		resolvedPath = candidatePath
	}
	absolutePath, absoluteError := filepath.Abs(resolvedPath)
	if absoluteError != nil {
		return resolvedPath
	}
	return absolutePath
}

func hasGitMetadataEntry(directoryPath string) bool {
	entryInformation, statError := os.Stat(filepath.Join(directoryPath, gitMetadataEntryNameConstant))
	if statError != nil {
		return false
	}
	return entryInformation.IsDir() || entryInformation.Mode().IsRegular()
}
