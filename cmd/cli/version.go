package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/openrepo/internal/execshell"
	"github.com/temirov/openrepo/internal/gitrepo"
)

const (
	versionCommandUseConstant              = "version"
	versionCommandShortDescriptionConstant = "Print the tool version and the detected git version"
	versionCommandLongDescriptionConstant  = "version reports the openrepo release and the version of the git binary on the current PATH."
	toolVersionOutputTemplateConstant      = "openrepo version: %s\n"
	gitVersionOutputTemplateConstant       = "git version: %s\n"
	unknownGitVersionConstant              = "unknown"
)

// ToolVersionResolver supplies the openrepo release identifier.
type ToolVersionResolver func(context.Context) string

// VersionCommandBuilder assembles the Cobra command reporting version information.
type VersionCommandBuilder struct {
	LoggerProvider      func() *zap.Logger
	ToolVersionResolver ToolVersionResolver
	GitExecutor         gitrepo.GitExecutor
}

// Build constructs the version command.
func (builder *VersionCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   versionCommandUseConstant,
		Short: versionCommandShortDescriptionConstant,
		Long:  versionCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *VersionCommandBuilder) run(command *cobra.Command, _ []string) error {
	toolVersion := fallbackToolVersionConstant
	if builder.ToolVersionResolver != nil {
		toolVersion = builder.ToolVersionResolver(command.Context())
	}

	fmt.Fprintf(command.OutOrStdout(), toolVersionOutputTemplateConstant, toolVersion)
	fmt.Fprintf(command.OutOrStdout(), gitVersionOutputTemplateConstant, builder.describeGitVersion(command.Context()))

	return nil
}

func (builder *VersionCommandBuilder) describeGitVersion(executionContext context.Context) string {
	gitExecutor, executorError := builder.resolveGitExecutor()
	if executorError != nil {
		return unknownGitVersionConstant
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(gitExecutor)
	if managerError != nil {
		return unknownGitVersionConstant
	}

	gitVersion, detected := repositoryManager.GitVersion(executionContext)
	if !detected {
		return unknownGitVersionConstant
	}

	return gitVersion.String()
}

func (builder *VersionCommandBuilder) resolveGitExecutor() (gitrepo.GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	logger := zap.NewNop()
	if builder.LoggerProvider != nil {
		if providedLogger := builder.LoggerProvider(); providedLogger != nil {
			logger = providedLogger
		}
	}

	return execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
}
