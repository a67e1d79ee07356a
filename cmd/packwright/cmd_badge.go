package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/packwright/internal/domain-adapters/gateways"
	"github.com/ochairo/packwright/internal/domain/services"
)

func (a *app) newBadgeCommand() *cobra.Command {
	var input, output, label, color, format string

	cmd := &cobra.Command{
		Use:   "badge",
		Args:  cobra.NoArgs,
		Short: "Render the benchmark mean as an SVG badge",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}

			settings := p.Badge
			flags := cmd.Flags()
			if flags.Changed("input") {
				settings.Input = input
			}
			if flags.Changed("output") {
				settings.Output = output
			}
			if flags.Changed("label") {
				settings.Label = label
			}
			if flags.Changed("color") {
				settings.Color = color
			}
			if flags.Changed("format") {
				if err := services.ValidateValueFormat(format); err != nil {
					return fmt.Errorf("--format: %w", err)
				}
				settings.Format = format
			}

			svc := services.NewBadgeService(gateways.NewBenchmarkFileStore(), gateways.NewBadgeRenderer(), a.domainLogger("badge"))
			value, err := svc.Render(settings)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "%s: %s -> %s\n", settings.Label, value, settings.Output)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Benchmark report (default from config: output.json)")
	cmd.Flags().StringVar(&output, "output", "", "SVG file to write (default from config: benchmark.svg)")
	cmd.Flags().StringVar(&label, "label", "", "Left-hand badge text")
	cmd.Flags().StringVar(&color, "color", "", "Value background color")
	cmd.Flags().StringVar(&format, "format", "", "Printf format for the mean in seconds")

	return cmd
}
