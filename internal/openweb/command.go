package openweb

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/openrepo/internal/execshell"
	"github.com/temirov/openrepo/internal/gitrepo"
	"github.com/temirov/openrepo/internal/ui"
	pathutils "github.com/temirov/openrepo/internal/utils/path"
)

const (
	openCommandUseConstant               = "open [path]"
	openCommandShortDescriptionConstant  = "Open the repository web URL in the browser"
	openCommandLongDescriptionConstant   = "open resolves the web URL of the repository containing the given path and launches it in the default browser."
	urlCommandUseConstant                = "url [path]"
	urlCommandShortDescriptionConstant   = "Print the repository web URL"
	urlCommandLongDescriptionConstant    = "url resolves the web URL of the repository containing the given path and prints it to standard output."
	checkCommandUseConstant              = "check [path]"
	checkCommandShortDescriptionConstant = "Report whether the path lies inside a Git working tree"
	checkCommandLongDescriptionConstant  = "check inspects the filesystem ancestry of the given path for Git repository metadata without invoking git."
	flagRemoteNameConstant               = "remote"
	flagRemoteDescriptionConstant        = "Remote whose URL should be used instead of the upstream remote"
	flagPrintOnlyNameConstant            = "print-only"
	flagPrintOnlyDescriptionConstant     = "Print the resolved URL instead of launching a browser"
	tooManyArgumentsMessageConstant      = "at most one path argument is accepted"
	insideRepositoryOutputConstant       = "true"
	outsideRepositoryOutputConstant      = "false"
)

var errTooManyArguments = errors.New(tooManyArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the configuration for the open command family.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console-oriented command event
// logging is enabled.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles the Cobra commands for repository web URL workflows.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	GitExecutor                  gitrepo.GitExecutor
	Browser                      BrowserOpener
	TargetResolver               *pathutils.TargetPathResolver
}

// BuildOpenCommand constructs the open command.
func (builder *CommandBuilder) BuildOpenCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   openCommandUseConstant,
		Short: openCommandShortDescriptionConstant,
		Long:  openCommandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.runOpen,
	}

	command.Flags().String(flagRemoteNameConstant, "", flagRemoteDescriptionConstant)
	command.Flags().Bool(flagPrintOnlyNameConstant, false, flagPrintOnlyDescriptionConstant)

	return command, nil
}

// BuildURLCommand constructs the url command.
func (builder *CommandBuilder) BuildURLCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   urlCommandUseConstant,
		Short: urlCommandShortDescriptionConstant,
		Long:  urlCommandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.runURL,
	}

	command.Flags().String(flagRemoteNameConstant, "", flagRemoteDescriptionConstant)

	return command, nil
}

// BuildCheckCommand constructs the check command.
func (builder *CommandBuilder) BuildCheckCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   checkCommandUseConstant,
		Short: checkCommandShortDescriptionConstant,
		Long:  checkCommandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.runCheck,
	}

	return command, nil
}

func (builder *CommandBuilder) runOpen(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	remoteName := builder.resolveRemoteName(command, configuration)

	printOnly := configuration.PrintOnly
	if flagValue, flagError := command.Flags().GetBool(flagPrintOnlyNameConstant); flagError == nil && command.Flags().Changed(flagPrintOnlyNameConstant) {
		printOnly = flagValue
	}

	targetPath, targetPathError := builder.resolveTargetPath(arguments)
	if targetPathError != nil {
		return targetPathError
	}

	service, serviceError := builder.resolveService(command.OutOrStdout(), configuration)
	if serviceError != nil {
		return serviceError
	}

	if printOnly {
		_, printError := service.PrintWebURL(command.Context(), targetPath, remoteName)
		return printError
	}

	_, openError := service.Open(command.Context(), targetPath, remoteName)
	return openError
}

func (builder *CommandBuilder) runURL(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	remoteName := builder.resolveRemoteName(command, configuration)

	targetPath, targetPathError := builder.resolveTargetPath(arguments)
	if targetPathError != nil {
		return targetPathError
	}

	service, serviceError := builder.resolveService(command.OutOrStdout(), configuration)
	if serviceError != nil {
		return serviceError
	}

	_, printError := service.PrintWebURL(command.Context(), targetPath, remoteName)
	return printError
}

func (builder *CommandBuilder) runCheck(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	targetPath, targetPathError := builder.resolveTargetPath(arguments)
	if targetPathError != nil {
		return targetPathError
	}

	service, serviceError := builder.resolveService(command.OutOrStdout(), configuration)
	if serviceError != nil {
		return serviceError
	}

	if service.IsInsideRepository(targetPath) {
		fmt.Fprintln(command.OutOrStdout(), insideRepositoryOutputConstant)
		return nil
	}

	fmt.Fprintln(command.OutOrStdout(), outsideRepositoryOutputConstant)
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}

	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveRemoteName(command *cobra.Command, configuration CommandConfiguration) string {
	if command.Flags().Changed(flagRemoteNameConstant) {
		flagValue, _ := command.Flags().GetString(flagRemoteNameConstant)
		return strings.TrimSpace(flagValue)
	}

	return configuration.RemoteName
}

func (builder *CommandBuilder) resolveTargetPath(arguments []string) (string, error) {
	if len(arguments) > 1 {
		return "", errTooManyArguments
	}

	candidatePath := ""
	if len(arguments) == 1 {
		candidatePath = arguments[0]
	}

	targetResolver := builder.TargetResolver
	if targetResolver == nil {
		targetResolver = pathutils.NewTargetPathResolver()
	}

	return targetResolver.Resolve(candidatePath)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveService(outputWriter io.Writer, configuration CommandConfiguration) (*Service, error) {
	logger := builder.resolveLogger()

	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return nil, executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManagerWithTimeout(gitExecutor, configuration.CommandTimeout)
	if managerError != nil {
		return nil, managerError
	}

	browserOpener := builder.Browser
	if browserOpener == nil {
		browserOpener = NewSystemBrowserOpener()
	}

	return NewService(ServiceDependencies{
		Logger:       logger,
		Locator:      gitrepo.NewWorktreeLocator(),
		Resolver:     repositoryManager,
		Browser:      browserOpener,
		OutputWriter: outputWriter,
	})
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (gitrepo.GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if builder.humanReadableLoggingEnabled() {
		return execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	}

	return execshell.NewShellExecutor(logger, commandRunner)
}

func (builder *CommandBuilder) humanReadableLoggingEnabled() bool {
	return builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider()
}
