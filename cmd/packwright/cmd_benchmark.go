package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/packwright/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/packwright/internal/domain-orchestrators"
)

func (a *app) newBenchmarkCommand() *cobra.Command {
	var (
		req     orchestrators.BenchmarkRequest
		warmup  int
		workDir string
	)

	cmd := &cobra.Command{
		Use:   "benchmark",
		Args:  cobra.NoArgs,
		Short: "Time repeated analyzer runs and write a benchmark report",
		Long: `Run the analyzer over the benchmark sources for a number of timed rounds and
write a pytest-benchmark compatible JSON report.

The "configured" variant first writes the analyzer configuration next to the
source root and passes it with --configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("warmup") {
				if warmup < 0 {
					return fmt.Errorf("--warmup must not be negative, got %d", warmup)
				}
				req.Warmup = &warmup
			}

			logger := a.domainLogger("benchmark")
			orch := orchestrators.NewBenchmarkOrchestrator(
				gateways.NewArtifactFinder(),
				gateways.NewCommandExecutor(logger),
				gateways.NewBenchmarkFileStore(),
				gateways.NewCommitInfoReader(),
				orchestrators.BenchmarkOrchestratorConfig{
					Artifacts: p.Artifacts,
					Benchmark: p.Benchmark,
					WorkDir:   workDir,
					Version:   version,
				},
				logger,
			)

			report, err := orch.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			stats := report.Benchmarks[0].Stats
			fmt.Fprintf(a.stdout, "%s: mean %.3f s, min %.3f s, max %.3f s over %d rounds\n",
				report.Benchmarks[0].Fullname, stats.Mean, stats.Min, stats.Max, stats.Rounds)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Variant, "variant", "", "Benchmark variant: plain or configured")
	cmd.Flags().IntVar(&req.Rounds, "rounds", 0, "Number of timed rounds (default from config: 5)")
	cmd.Flags().IntVar(&warmup, "warmup", 0, "Number of untimed warmup rounds (default from config: 0)")
	cmd.Flags().StringVar(&req.SrcDir, "src-dir", "", "Analyzer source directory (default from config: ssl31/src)")
	cmd.Flags().StringVar(&req.Output, "output", "", "Report path (default from config: output.json)")
	cmd.Flags().BoolVar(&req.IgnoreExitCode, "ignore-exit-code", false, "Keep timing rounds whose analyzer exit status is non-zero")
	cmd.Flags().StringVar(&workDir, "workdir", ".", "Project directory containing the build output")

	return cmd
}
