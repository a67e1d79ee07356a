package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ochairo/packwright/internal/domain/entities"
	"github.com/ochairo/packwright/internal/domain/interfaces"
	"github.com/ochairo/packwright/internal/external-adapters/yaml"
	"github.com/ochairo/packwright/internal/logging"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			a.logger.Warn("command interrupted", "error", err)
			return 130
		}
		a.logger.Error("command execution failed", "error", err)
		return 1
	}
	return 0
}

// app carries the global flags and the logger built from them
type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	configPath string
	logLevel   string
	logFormat  string
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		logger: logging.New(logging.ModeCLI, stderr, slog.LevelInfo),
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "packwright",
		Short:         "CI helpers for packaging, benchmarking and release checks of the BSL Language Server",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Pipeline configuration file (default "+yaml.DefaultConfigFile+" if present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Set log verbosity (debug, info, warning, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "Log output format (text, json)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(a.logLevel)
		if err != nil {
			return err
		}
		mode, err := logging.ParseMode(a.logFormat)
		if err != nil {
			return err
		}
		a.logger = logging.New(mode, a.stderr, level)
		slog.SetDefault(a.logger)
		return nil
	}

	root.AddCommand(
		a.newLocateCommand(),
		a.newPackageCommand(),
		a.newBenchmarkCommand(),
		a.newBadgeCommand(),
		a.newVerifyArchiveCommand(),
	)
	return root
}

// pipeline loads the configuration file, falling back to defaults
func (a *app) pipeline(ctx context.Context) (*entities.Pipeline, error) {
	path, required := a.configPath, true
	if path == "" {
		path, required = yaml.DefaultConfigFile, false
	}
	return yaml.NewPipelineRepository(path, required).Load(ctx)
}

// domainLogger adapts the CLI logger for services and gateways
func (a *app) domainLogger(command string) interfaces.Logger {
	return logging.NewFieldLogger(a.logger.With("command", command))
}
