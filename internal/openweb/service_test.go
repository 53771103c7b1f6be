package openweb_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/openrepo/internal/openweb"
)

type stubRepositoryLocator struct {
	insideRepository bool
	observedPaths    []string
}

func (locator *stubRepositoryLocator) IsInsideRepository(candidatePath string) bool {
	locator.observedPaths = append(locator.observedPaths, candidatePath)
	return locator.insideRepository
}

type stubWebURLResolver struct {
	webURL              string
	resolved            bool
	observedRepository  string
	observedRemoteNames []string
}

func (resolver *stubWebURLResolver) ResolveWebURL(_ context.Context, repositoryPath string, remoteName string) (string, bool) {
	resolver.observedRepository = repositoryPath
	resolver.observedRemoteNames = append(resolver.observedRemoteNames, remoteName)
	return resolver.webURL, resolver.resolved
}

type recordingBrowserOpener struct {
	openedURL string
	failure   error
}

func (opener *recordingBrowserOpener) OpenURL(targetURL string) error {
	opener.openedURL = targetURL
	return opener.failure
}

func newServiceForTest(testInstance *testing.T, locator openweb.RepositoryLocator, resolver openweb.WebURLResolver, browser openweb.BrowserOpener, outputWriter *bytes.Buffer) *openweb.Service {
	testInstance.Helper()

	service, creationError := openweb.NewService(openweb.ServiceDependencies{
		Locator:      locator,
		Resolver:     resolver,
		Browser:      browser,
		OutputWriter: outputWriter,
	})
	require.NoError(testInstance, creationError)

	return service
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	locator := &stubRepositoryLocator{}
	resolver := &stubWebURLResolver{}
	browser := &recordingBrowserOpener{}

	testCases := []struct {
		name         string
		dependencies openweb.ServiceDependencies
		expectError  bool
	}{
		{
			name:         "missing_locator",
			dependencies: openweb.ServiceDependencies{Resolver: resolver, Browser: browser},
			expectError:  true,
		},
		{
			name:         "missing_resolver",
			dependencies: openweb.ServiceDependencies{Locator: locator, Browser: browser},
			expectError:  true,
		},
		{
			name:         "missing_browser",
			dependencies: openweb.ServiceDependencies{Locator: locator, Resolver: resolver},
			expectError:  true,
		},
		{
			name:         "complete_dependencies",
			dependencies: openweb.ServiceDependencies{Locator: locator, Resolver: resolver, Browser: browser},
			expectError:  false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			service, creationError := openweb.NewService(testCase.dependencies)

			if testCase.expectError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, service)
				return
			}

			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, service)
		})
	}
}

func TestServiceResolve(testInstance *testing.T) {
	testCases := []struct {
		name             string
		insideRepository bool
		resolvedWebURL   string
		resolved         bool
		expectedWebURL   string
		expectedError    error
	}{
		{
			name:             "resolves_web_url_inside_repository",
			insideRepository: true,
			resolvedWebURL:   "https://github.com/acme/widgets",
			resolved:         true,
			expectedWebURL:   "https://github.com/acme/widgets",
		},
		{
			name:             "reports_paths_outside_working_trees",
			insideRepository: false,
			expectedError:    openweb.ErrNotRepository,
		},
		{
			name:             "reports_undetermined_web_urls",
			insideRepository: true,
			resolved:         false,
			expectedError:    openweb.ErrWebURLUndetermined,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			locator := &stubRepositoryLocator{insideRepository: testCase.insideRepository}
			resolver := &stubWebURLResolver{webURL: testCase.resolvedWebURL, resolved: testCase.resolved}
			outputBuffer := &bytes.Buffer{}
			service := newServiceForTest(testInstance, locator, resolver, &recordingBrowserOpener{}, outputBuffer)

			webURL, resolveError := service.Resolve(context.Background(), testInstance.TempDir(), "")

			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, resolveError, testCase.expectedError)
				require.Empty(testInstance, webURL)
				return
			}

			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expectedWebURL, webURL)
		})
	}
}

func TestServiceResolveUsesContainingDirectoryForFilePaths(testInstance *testing.T) {
	repositoryDirectory := testInstance.TempDir()
	trackedFilePath := filepath.Join(repositoryDirectory, "main.go")
	require.NoError(testInstance, os.WriteFile(trackedFilePath, []byte("package main\n"), 0o600))

	locator := &stubRepositoryLocator{insideRepository: true}
	resolver := &stubWebURLResolver{webURL: "https://github.com/acme/widgets", resolved: true}
	service := newServiceForTest(testInstance, locator, resolver, &recordingBrowserOpener{}, &bytes.Buffer{})

	_, resolveError := service.Resolve(context.Background(), trackedFilePath, "")

	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, []string{repositoryDirectory}, locator.observedPaths)
	require.Equal(testInstance, repositoryDirectory, resolver.observedRepository)
}

func TestServiceOpenLaunchesBrowser(testInstance *testing.T) {
	locator := &stubRepositoryLocator{insideRepository: true}
	resolver := &stubWebURLResolver{webURL: "https://github.com/acme/widgets", resolved: true}
	browser := &recordingBrowserOpener{}
	service := newServiceForTest(testInstance, locator, resolver, browser, &bytes.Buffer{})

	webURL, openError := service.Open(context.Background(), testInstance.TempDir(), "")

	require.NoError(testInstance, openError)
	require.Equal(testInstance, "https://github.com/acme/widgets", webURL)
	require.Equal(testInstance, "https://github.com/acme/widgets", browser.openedURL)
}

func TestServiceOpenWrapsBrowserFailures(testInstance *testing.T) {
	launchFailure := errors.New("no browser available")
	locator := &stubRepositoryLocator{insideRepository: true}
	resolver := &stubWebURLResolver{webURL: "https://github.com/acme/widgets", resolved: true}
	browser := &recordingBrowserOpener{failure: launchFailure}
	service := newServiceForTest(testInstance, locator, resolver, browser, &bytes.Buffer{})

	_, openError := service.Open(context.Background(), testInstance.TempDir(), "")

	require.ErrorIs(testInstance, openError, launchFailure)
	require.Contains(testInstance, openError.Error(), "https://github.com/acme/widgets")
}

func TestServicePrintWebURLWritesResolvedURL(testInstance *testing.T) {
	locator := &stubRepositoryLocator{insideRepository: true}
	resolver := &stubWebURLResolver{webURL: "https://gitlab.com/acme/widgets", resolved: true}
	outputBuffer := &bytes.Buffer{}
	service := newServiceForTest(testInstance, locator, resolver, &recordingBrowserOpener{}, outputBuffer)

	webURL, printError := service.PrintWebURL(context.Background(), testInstance.TempDir(), "gitlab")

	require.NoError(testInstance, printError)
	require.Equal(testInstance, "https://gitlab.com/acme/widgets", webURL)
	require.Equal(testInstance, "https://gitlab.com/acme/widgets\n", outputBuffer.String())
	require.Equal(testInstance, []string{"gitlab"}, resolver.observedRemoteNames)
}
