package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/openrepo/internal/execshell"
)

const testRepositoryDirectoryConstant = "/workspace/project"

func TestCommandMessageFormatterDescribesGitSubcommands(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	upstreamCommand := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"rev-parse", "--symbolic-full-name", "@{upstream}"},
			WorkingDirectory: testRepositoryDirectoryConstant,
		},
	}
	remoteCommand := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"remote", "get-url", "origin"},
			WorkingDirectory: testRepositoryDirectoryConstant,
		},
	}
	versionCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"version"}},
	}

	testCases := []struct {
		name            string
		buildMessage    func() string
		expectedMessage string
	}{
		{
			name: "upstream_lookup_start",
			buildMessage: func() string {
				return formatter.BuildStartedMessage(upstreamCommand)
			},
			expectedMessage: "Checking upstream tracking branch in /workspace/project",
		},
		{
			name: "upstream_lookup_missing",
			buildMessage: func() string {
				return formatter.BuildSuccessMessage(upstreamCommand)
			},
			expectedMessage: "No upstream tracking branch configured in /workspace/project",
		},
		{
			name: "remote_lookup_start",
			buildMessage: func() string {
				return formatter.BuildStartedMessage(remoteCommand)
			},
			expectedMessage: "Reading origin remote URL in /workspace/project",
		},
		{
			name: "remote_lookup_failure",
			buildMessage: func() string {
				return formatter.BuildFailureMessage(remoteCommand, execshell.ExecutionResult{ExitCode: 2, StandardError: "error: No such remote 'origin'"})
			},
			expectedMessage: "Failed to read origin remote URL in /workspace/project (exit code 2: error: No such remote 'origin')",
		},
		{
			name: "version_start",
			buildMessage: func() string {
				return formatter.BuildStartedMessage(versionCommand)
			},
			expectedMessage: "Detecting git version",
		},
		{
			name: "version_execution_failure",
			buildMessage: func() string {
				return formatter.BuildExecutionFailureMessage(versionCommand, errors.New("executable file not found"))
			},
			expectedMessage: "Could not invoke git: executable file not found",
		},
		{
			name: "generic_fallback",
			buildMessage: func() string {
				return formatter.BuildStartedMessage(execshell.ShellCommand{
					Name:    execshell.CommandGit,
					Details: execshell.CommandDetails{Arguments: []string{"status"}},
				})
			},
			expectedMessage: "Running git status",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, testCase.buildMessage())
		})
	}
}
