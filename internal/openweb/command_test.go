package openweb_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/temirov/openrepo/internal/execshell"
	"github.com/temirov/openrepo/internal/openweb"
	pathutils "github.com/temirov/openrepo/internal/utils/path"
)

const upstreamSubcommandKey = "rev-parse --symbolic-full-name @{upstream}"

type scriptedGitExecutor struct {
	responses map[string]scriptedGitResponse
}

type scriptedGitResponse struct {
	standardOutput string
	failure        error
}

func newScriptedGitExecutor() *scriptedGitExecutor {
	return &scriptedGitExecutor{responses: map[string]scriptedGitResponse{}}
}

func (executor *scriptedGitExecutor) respondTo(subcommandKey string, standardOutput string, failure error) {
	executor.responses[subcommandKey] = scriptedGitResponse{standardOutput: standardOutput, failure: failure}
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	subcommandKey := strings.Join(details.Arguments, " ")
	response, scripted := executor.responses[subcommandKey]
	if !scripted {
		return execshell.ExecutionResult{}, execshell.CommandExecutionError{
			Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: details},
			Cause:   os.ErrNotExist,
		}
	}
	if response.failure != nil {
		return execshell.ExecutionResult{}, response.failure
	}
	return execshell.ExecutionResult{StandardOutput: response.standardOutput}, nil
}

func makeUpstreamFailure() error {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: no upstream configured"},
	}
}

func createRepositoryFixture(testInstance *testing.T) string {
	testInstance.Helper()

	repositoryDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.Mkdir(filepath.Join(repositoryDirectory, ".git"), 0o755))

	return repositoryDirectory
}

func executeBuiltCommand(testInstance *testing.T, buildCommand func() (*cobra.Command, error), arguments []string) (string, error) {
	testInstance.Helper()

	command, buildError := buildCommand()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs(arguments)

	executionError := command.Execute()

	return outputBuffer.String(), executionError
}

func newCommandBuilderForTest(gitExecutor *scriptedGitExecutor, browser openweb.BrowserOpener) *openweb.CommandBuilder {
	return &openweb.CommandBuilder{
		GitExecutor:    gitExecutor,
		Browser:        browser,
		TargetResolver: pathutils.NewTargetPathResolver(),
	}
}

func TestURLCommandResolutionScenarios(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		scriptResponses      func(executor *scriptedGitExecutor)
		useRepositoryFixture bool
		extraArguments       []string
		expectedOutput       string
		expectedErrorMessage string
	}{
		{
			name: "https_remote_resolved_through_upstream",
			scriptResponses: func(executor *scriptedGitExecutor) {
				executor.respondTo(upstreamSubcommandKey, "refs/remotes/origin/main", nil)
				executor.respondTo("remote get-url origin", "https://github.com/acme/widgets.git", nil)
			},
			useRepositoryFixture: true,
			expectedOutput:       "https://github.com/acme/widgets\n",
		},
		{
			name: "scp_remote_resolved_through_explicit_remote_flag",
			scriptResponses: func(executor *scriptedGitExecutor) {
				executor.respondTo("remote get-url gitlab", "git@gitlab.com:acme/widgets.git", nil)
			},
			useRepositoryFixture: true,
			extraArguments:       []string{"--remote", "gitlab"},
			expectedOutput:       "https://gitlab.com/acme/widgets\n",
		},
		{
			name:                 "path_outside_working_tree",
			scriptResponses:      func(executor *scriptedGitExecutor) {},
			useRepositoryFixture: false,
			expectedErrorMessage: "not inside a Git working tree",
		},
		{
			name: "missing_upstream_without_remote_override",
			scriptResponses: func(executor *scriptedGitExecutor) {
				executor.respondTo(upstreamSubcommandKey, "", makeUpstreamFailure())
			},
			useRepositoryFixture: true,
			expectedErrorMessage: "Can't determine repo web URL...",
		},
		{
			name:                 "missing_git_binary",
			scriptResponses:      func(executor *scriptedGitExecutor) {},
			useRepositoryFixture: true,
			expectedErrorMessage: "Can't determine repo web URL...",
		},
		{
			name: "unsupported_ssh_scheme_remote",
			scriptResponses: func(executor *scriptedGitExecutor) {
				executor.respondTo(upstreamSubcommandKey, "refs/remotes/origin/main", nil)
				executor.respondTo("remote get-url origin", "ssh://git@github.com/acme/widgets.git", nil)
			},
			useRepositoryFixture: true,
			expectedErrorMessage: "Can't determine repo web URL...",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			gitExecutor := newScriptedGitExecutor()
			testCase.scriptResponses(gitExecutor)

			targetDirectory := testInstance.TempDir()
			if testCase.useRepositoryFixture {
				targetDirectory = createRepositoryFixture(testInstance)
			}

			builder := newCommandBuilderForTest(gitExecutor, &recordingBrowserOpener{})
			arguments := append([]string{targetDirectory}, testCase.extraArguments...)

			commandOutput, executionError := executeBuiltCommand(testInstance, builder.BuildURLCommand, arguments)

			if len(testCase.expectedErrorMessage) > 0 {
				require.Error(testInstance, executionError)
				require.Contains(testInstance, executionError.Error(), testCase.expectedErrorMessage)
				return
			}

			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedOutput, commandOutput)
		})
	}
}

func TestOpenCommandLaunchesBrowser(testInstance *testing.T) {
	gitExecutor := newScriptedGitExecutor()
	gitExecutor.respondTo(upstreamSubcommandKey, "refs/remotes/origin/main", nil)
	gitExecutor.respondTo("remote get-url origin", "https://github.com/acme/widgets.git", nil)

	browser := &recordingBrowserOpener{}
	builder := newCommandBuilderForTest(gitExecutor, browser)
	repositoryDirectory := createRepositoryFixture(testInstance)

	commandOutput, executionError := executeBuiltCommand(testInstance, builder.BuildOpenCommand, []string{repositoryDirectory})

	require.NoError(testInstance, executionError)
	require.Empty(testInstance, commandOutput)
	require.Equal(testInstance, "https://github.com/acme/widgets", browser.openedURL)
}

func TestOpenCommandPrintOnlySkipsBrowser(testInstance *testing.T) {
	gitExecutor := newScriptedGitExecutor()
	gitExecutor.respondTo(upstreamSubcommandKey, "refs/remotes/origin/main", nil)
	gitExecutor.respondTo("remote get-url origin", "https://github.com/acme/widgets.git", nil)

	browser := &recordingBrowserOpener{}
	builder := newCommandBuilderForTest(gitExecutor, browser)
	repositoryDirectory := createRepositoryFixture(testInstance)

	commandOutput, executionError := executeBuiltCommand(testInstance, builder.BuildOpenCommand, []string{repositoryDirectory, "--print-only"})

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "https://github.com/acme/widgets\n", commandOutput)
	require.Empty(testInstance, browser.openedURL)
}

func TestCheckCommandReportsWorkingTreeMembership(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		useRepositoryFixture bool
		expectedOutput       string
	}{
		{
			name:                 "inside_working_tree",
			useRepositoryFixture: true,
			expectedOutput:       "true\n",
		},
		{
			name:                 "outside_working_tree",
			useRepositoryFixture: false,
			expectedOutput:       "false\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			targetDirectory := testInstance.TempDir()
			if testCase.useRepositoryFixture {
				targetDirectory = createRepositoryFixture(testInstance)
			}

			builder := newCommandBuilderForTest(newScriptedGitExecutor(), &recordingBrowserOpener{})

			commandOutput, executionError := executeBuiltCommand(testInstance, builder.BuildCheckCommand, []string{targetDirectory})

			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedOutput, commandOutput)
		})
	}
}
