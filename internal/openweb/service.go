package openweb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	notRepositoryMessageConstant          = "not inside a Git working tree"
	webURLUndeterminedMessageConstant     = "Can't determine repo web URL..."
	locatorRequiredMessageConstant        = "repository locator must be provided"
	resolverRequiredMessageConstant       = "web URL resolver must be provided"
	browserRequiredMessageConstant        = "browser opener must be provided"
	browserLaunchErrorTemplateConstant    = "unable to open %s in the browser: %w"
	repositoryPathLogFieldNameConstant    = "repository_path"
	remoteNameLogFieldNameConstant        = "remote_name"
	webURLLogFieldNameConstant            = "web_url"
	resolvedWebURLLogMessageConstant      = "Resolved repository web URL"
	outsideRepositoryLogMessageConstant   = "Path is outside any Git working tree"
	unresolvedRemoteURLLogMessageConstant = "Remote web URL could not be determined"
)

// Typed failures surfaced to the command layer.
var (
	ErrNotRepository      = errors.New(notRepositoryMessageConstant)
	ErrWebURLUndetermined = errors.New(webURLUndeterminedMessageConstant)
	errLocatorRequired    = errors.New(locatorRequiredMessageConstant)
	errResolverRequired   = errors.New(resolverRequiredMessageConstant)
	errBrowserRequired    = errors.New(browserRequiredMessageConstant)
)

// RepositoryLocator reports whether a path lies inside a Git working tree.
type RepositoryLocator interface {
	IsInsideRepository(candidatePath string) bool
}

// WebURLResolver resolves a repository's remote web URL.
type WebURLResolver interface {
	ResolveWebURL(executionContext context.Context, repositoryPath string, remoteName string) (string, bool)
}

// ServiceDependencies enumerates the collaborators required by the Service.
type ServiceDependencies struct {
	Logger       *zap.Logger
	Locator      RepositoryLocator
	Resolver     WebURLResolver
	Browser      BrowserOpener
	OutputWriter io.Writer
}

// Service coordinates repository detection, URL resolution, and browser launch.
type Service struct {
	logger       *zap.Logger
	locator      RepositoryLocator
	resolver     WebURLResolver
	browser      BrowserOpener
	outputWriter io.Writer
}

// NewService validates the dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Locator == nil {
		return nil, errLocatorRequired
	}
	if dependencies.Resolver == nil {
		return nil, errResolverRequired
	}
	if dependencies.Browser == nil {
		return nil, errBrowserRequired
	}

	resolvedLogger := dependencies.Logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	resolvedOutputWriter := dependencies.OutputWriter
	if resolvedOutputWriter == nil {
		resolvedOutputWriter = os.Stdout
	}

	return &Service{
		logger:       resolvedLogger,
		locator:      dependencies.Locator,
		resolver:     dependencies.Resolver,
		browser:      dependencies.Browser,
		outputWriter: resolvedOutputWriter,
	}, nil
}

// IsInsideRepository reports whether the target path lies inside a Git working tree.
// A file path is evaluated through its containing directory.
func (service *Service) IsInsideRepository(targetPath string) bool {
	return service.locator.IsInsideRepository(containingDirectory(targetPath))
}

// Resolve determines the repository web URL for the target path.
func (service *Service) Resolve(executionContext context.Context, targetPath string, remoteName string) (string, error) {
	repositoryPath := containingDirectory(targetPath)

	if !service.locator.IsInsideRepository(repositoryPath) {
		service.logger.Debug(outsideRepositoryLogMessageConstant,
			zap.String(repositoryPathLogFieldNameConstant, repositoryPath),
		)
		return "", ErrNotRepository
	}

	webURL, resolved := service.resolver.ResolveWebURL(executionContext, repositoryPath, remoteName)
	if !resolved {
		service.logger.Debug(unresolvedRemoteURLLogMessageConstant,
			zap.String(repositoryPathLogFieldNameConstant, repositoryPath),
			zap.String(remoteNameLogFieldNameConstant, remoteName),
		)
		return "", ErrWebURLUndetermined
	}

	service.logger.Debug(resolvedWebURLLogMessageConstant,
		zap.String(repositoryPathLogFieldNameConstant, repositoryPath),
		zap.String(webURLLogFieldNameConstant, webURL),
	)

	return webURL, nil
}

// PrintWebURL resolves the repository web URL and writes it to the output writer.
func (service *Service) PrintWebURL(executionContext context.Context, targetPath string, remoteName string) (string, error) {
	webURL, resolveError := service.Resolve(executionContext, targetPath, remoteName)
	if resolveError != nil {
		return "", resolveError
	}

	fmt.Fprintln(service.outputWriter, webURL)

	return webURL, nil
}

// Open resolves the repository web URL and launches it in the browser.
func (service *Service) Open(executionContext context.Context, targetPath string, remoteName string) (string, error) {
	webURL, resolveError := service.Resolve(executionContext, targetPath, remoteName)
	if resolveError != nil {
		return "", resolveError
	}

	openError := service.browser.OpenURL(webURL)
	if openError != nil {
		return "", fmt.Errorf(browserLaunchErrorTemplateConstant, webURL, openError)
	}

	return webURL, nil
}

// containingDirectory maps a file path to its parent directory so every
// downstream operation works on a directory handle. Paths that cannot be
// inspected pass through unchanged.
func containingDirectory(targetPath string) string {
	pathInformation, statError := os.Stat(targetPath)
	if statError != nil {
		return targetPath
	}
	if pathInformation.IsDir() {
		return targetPath
	}
	return filepath.Dir(targetPath)
}
