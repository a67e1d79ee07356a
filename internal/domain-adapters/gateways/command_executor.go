package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ochairo/packwright/internal/domain/interfaces"
)

// ErrCommandFailed wraps every non-successful command execution
var ErrCommandFailed = errors.New("command failed")

// CommandExecutor runs external tools (jpackage, java) as child processes
type CommandExecutor struct {
	defaultTimeout time.Duration
	logger         interfaces.Logger
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(logger interfaces.Logger) *CommandExecutor {
	return &CommandExecutor{
		defaultTimeout: 30 * time.Minute,
		logger:         interfaces.EnsureLogger(logger),
	}
}

// CommandSpec describes a single process invocation.
// Argv[0] is resolved through PATH; no shell is involved.
type CommandSpec struct {
	Argv        []string
	WorkingDir  string
	Env         map[string]string
	Timeout     time.Duration
	Description string
	// Output, when set, also receives the combined stdout/stderr stream
	Output io.Writer
}

// ExecuteResult contains the result of a command execution
type ExecuteResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Error    error
}

// Execute runs the command and reports its outcome without interpreting it
func (ce *CommandExecutor) Execute(ctx context.Context, spec CommandSpec) *ExecuteResult {
	result := &ExecuteResult{}
	if len(spec.Argv) == 0 {
		result.ExitCode = -1
		result.Error = fmt.Errorf("empty command")
		return result
	}

	timeout := spec.Timeout
	if timeout == 0 {
		timeout = ce.defaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // G204: argv comes from pipeline configuration
	cmd := exec.CommandContext(execCtx, spec.Argv[0], spec.Argv[1:]...)
	if spec.WorkingDir != "" {
		cmd.Dir = spec.WorkingDir
	}

	if len(spec.Env) > 0 {
		env := os.Environ()
		for key, value := range spec.Env {
			env = append(env, fmt.Sprintf("%s=%s", key, value))
		}
		cmd.Env = env
	}

	var stdout, stderr bytes.Buffer
	if spec.Output != nil {
		cmd.Stdout = io.MultiWriter(&stdout, spec.Output)
		cmd.Stderr = io.MultiWriter(&stderr, spec.Output)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	ce.logger.Debug("executing command",
		interfaces.F("description", spec.Description),
		interfaces.F("argv", strings.Join(spec.Argv, " ")),
		interfaces.F("dir", spec.WorkingDir))

	startTime := time.Now()
	err := cmd.Run()
	result.Duration = time.Since(startTime)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		result.Error = err
		var exitErr *exec.ExitError
		//nolint:gocritic // ifElseChain: checking different error types, not suitable for switch
		if execCtx.Err() == context.DeadlineExceeded {
			result.Error = fmt.Errorf("command timeout after %v", timeout)
			result.ExitCode = -1
		} else if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		return result
	}

	result.Success = true
	return result
}

// Run executes the command and converts any failure into an error wrapping ErrCommandFailed
func (ce *CommandExecutor) Run(ctx context.Context, spec CommandSpec) (*ExecuteResult, error) {
	result := ce.Execute(ctx, spec)
	if result.Success {
		ce.logger.Debug("command finished",
			interfaces.F("description", spec.Description),
			interfaces.F("duration", result.Duration))
		return result, nil
	}

	ce.logger.Debug("command failed",
		interfaces.F("description", spec.Description),
		interfaces.F("exit_code", result.ExitCode),
		interfaces.F("stderr", tail(result.Stderr, 2048)))

	return result, fmt.Errorf("%w: %s (exit %d): %v", ErrCommandFailed, describe(spec), result.ExitCode, result.Error)
}

func describe(spec CommandSpec) string {
	if spec.Description != "" {
		return spec.Description
	}
	if len(spec.Argv) > 0 {
		return spec.Argv[0]
	}
	return "command"
}

// tail keeps the last n bytes of s for log output
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
