package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	gitToolNameConstant                       = "git"
	commandFailedErrorTemplateConstant        = "`%s` returned exit code %d%s"
	commandExecutionErrorTemplateConstant     = "%s execution failed: %s"
	commandStringJoinSeparatorConstant        = " "
	standardErrorDetailTemplateConstant       = ": %s"
	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"
	commandLifecycleLogMessageConstant        = "external command"
	logFieldCommandConstant                   = "command"
	logFieldExitCodeConstant                  = "exit_code"
	defaultCommandTimeoutSecondsConstant      = 3
)

// DefaultCommandTimeout bounds a single external process invocation when the caller supplies no timeout.
const DefaultCommandTimeout = defaultCommandTimeoutSecondsConstant * time.Second

// CommandName identifies a supported external executable.
type CommandName string

// CommandGit identifies the git executable.
const CommandGit CommandName = CommandName(gitToolNameConstant)

// CommandDetails describes one external process invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	Timeout              time.Duration
}

// ShellCommand pairs an executable name with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// String renders the command as a single shell-style string.
func (command ShellCommand) String() string {
	commandParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	return strings.Join(commandParts, commandStringJoinSeparatorConstant)
}

// ExecutionResult captures the observable outputs of an executed command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner represents the ability to run shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Sentinel errors reported during executor construction.
var (
	ErrLoggerNotConfigured        = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including exit code and captured standard error.
func (failure CommandFailedError) Error() string {
	standardErrorDetail := ""
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorDetail = fmt.Sprintf(standardErrorDetailTemplateConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, failure.Command.String(), failure.Result.ExitCode, standardErrorDetail)
}

// CommandExecutionError reports a command that could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	causeDescription := ""
	if failure.Cause != nil {
		causeDescription = failure.Cause.Error()
	}
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, failure.Command.String(), causeDescription)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// TimedOut reports whether the execution failure was caused by the per-invocation timeout.
func (failure CommandExecutionError) TimedOut() bool {
	return errors.Is(failure.Cause, context.DeadlineExceeded)
}

// ShellExecutor coordinates external command execution with logging and lifecycle notifications.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor constructs a ShellExecutor with a no-op event observer.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithObserver(logger, runner, noopCommandEventObserver{})
}

// NewShellExecutorWithObserver constructs a ShellExecutor that notifies the supplied observer.
func NewShellExecutorWithObserver(logger *zap.Logger, runner CommandRunner, observer CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if observer == nil {
		observer = noopCommandEventObserver{}
	}

	return &ShellExecutor{
		logger:    logger,
		runner:    runner,
		observer:  observer,
		formatter: CommandMessageFormatter{},
	}, nil
}

// ExecuteGit runs git with the provided invocation details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// Execute runs the supplied command, bounding it with the configured or default timeout.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	invocationTimeout := command.Details.Timeout
	if invocationTimeout <= 0 {
		invocationTimeout = DefaultCommandTimeout
	}

	boundedContext, cancelInvocation := context.WithTimeout(executionContext, invocationTimeout)
	defer cancelInvocation()

	executor.logger.Debug(
		commandLifecycleLogMessageConstant+": "+executor.formatter.BuildStartedMessage(command),
		zap.String(logFieldCommandConstant, command.String()),
	)
	executor.observer.CommandStarted(command)

	executionResult, executionError := executor.runner.Run(boundedContext, command)
	if executionError != nil {
		executor.logger.Error(
			executor.formatter.BuildExecutionFailureMessage(command, executionError),
			zap.String(logFieldCommandConstant, command.String()),
		)
		executor.observer.CommandExecutionFailed(command, executionError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: executionError}
	}

	executionResult.StandardOutput = strings.TrimRight(executionResult.StandardOutput, "\r\n\t ")
	executor.observer.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Debug(
			executor.formatter.BuildFailureMessage(command, executionResult),
			zap.String(logFieldCommandConstant, command.String()),
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
		)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(
		executor.formatter.BuildSuccessMessage(command),
		zap.String(logFieldCommandConstant, command.String()),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
	)
	return executionResult, nil
}
