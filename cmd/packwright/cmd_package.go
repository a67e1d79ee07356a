package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/packwright/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/packwright/internal/domain-orchestrators"
)

func (a *app) newPackageCommand() *cobra.Command {
	var (
		workDir    string
		platform   string
		noChecksum bool
	)

	cmd := &cobra.Command{
		Use:   "package <image-prefix> <executable-file>",
		Args:  cobra.ExactArgs(2),
		Short: "Build the native application image and zip it",
		Long: `Locate the executable jar, run the packaging tool on it and zip the resulting
image directory into <image-name>_<image-prefix>.zip with a .sha256 sidecar.

Examples:
  packwright package ubuntu-latest bsl-language-server
  packwright package windows-latest bsl-language-server --platform windows`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}

			settings := p.Package
			if cmd.Flags().Changed("platform") {
				settings.Platform = platform
			}
			if noChecksum {
				settings.Checksum = false
			}

			logger := a.domainLogger("package")
			orch := orchestrators.NewPackageOrchestrator(
				gateways.NewArtifactFinder(),
				gateways.NewCommandExecutor(logger),
				gateways.NewPackager(),
				gateways.NewChecksumWriter(),
				orchestrators.PackageOrchestratorConfig{
					Artifacts: p.Artifacts,
					Package:   settings,
					WorkDir:   workDir,
				},
				logger,
			)

			result, err := orch.Package(cmd.Context(), orchestrators.PackageRequest{
				ImagePrefix:    args[0],
				ExecutableFile: args[1],
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(a.stdout, result.GetPackageSummary())
			return nil
		},
	}

	cmd.Flags().StringVar(&workDir, "workdir", ".", "Project directory containing the build output")
	cmd.Flags().StringVar(&platform, "platform", "", "Target OS for packaging flags (default: host OS)")
	cmd.Flags().BoolVar(&noChecksum, "no-checksum", false, "Skip writing the .sha256 sidecar")

	return cmd
}
