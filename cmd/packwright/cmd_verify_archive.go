package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/packwright/internal/domain-adapters/gateways"
	"github.com/ochairo/packwright/internal/domain/services"
)

func (a *app) newVerifyArchiveCommand() *cobra.Command {
	var (
		checksumPath  string
		signaturePath string
		keyrings      []string
	)

	cmd := &cobra.Command{
		Use:   "verify-archive <path> [min-size-mb]",
		Args:  cobra.RangeArgs(1, 2),
		Short: "Check that a release archive exists and is not truncated",
		Long: `Check that the archive exists and is at least min-size-mb megabytes
(1 MB = 1048576 bytes, default 1). Optionally verify a SHA-256 sidecar and a
detached OpenPGP signature against local key files.

Exit Codes:
  0  Archive present and large enough (and every requested check passed)
  1  Missing, too small, invalid arguments or a failed check

Examples:
  packwright verify-archive bsl-language-server_ubuntu-latest.zip
  packwright verify-archive app.zip 20 --checksum app.zip.sha256
  packwright verify-archive app.zip --signature app.zip.asc --keyring release-key.asc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var minArg string
			if len(args) > 1 {
				minArg = args[1]
			}
			minSize, err := services.ParseMinSize(minArg)
			if err != nil {
				return err
			}
			if signaturePath != "" && len(keyrings) == 0 {
				return fmt.Errorf("--signature requires at least one --keyring")
			}

			logger := a.domainLogger("verify-archive")
			sizes := services.NewArchiveSizeService(logger)
			report := sizes.Check(args[0], minSize)
			sizes.WriteReport(a.stdout, report)
			a.logger.Debug("size check finished", "path", report.Path, "exit_code", report.ExitCode())
			if err := sizes.Err(report); err != nil {
				return err
			}

			if checksumPath == "" && signaturePath == "" {
				return nil
			}

			verifier := services.NewArchiveVerificationService(gateways.NewChecksumWriter(), gateways.NewGPGVerifier(), logger)
			result, err := verifier.Verify(services.ArchiveVerificationRequest{
				ArchivePath:   args[0],
				ChecksumPath:  checksumPath,
				SignaturePath: signaturePath,
				KeyringPaths:  keyrings,
			})
			if err != nil {
				return err
			}

			if result.ChecksumVerified {
				fmt.Fprintln(a.stdout, "✅ Checksum verified")
			}
			if result.SignatureVerified {
				fmt.Fprintf(a.stdout, "✅ Signature verified (key %s)\n", result.SignerFingerprint)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&checksumPath, "checksum", "", "SHA-256 sidecar file to verify against")
	cmd.Flags().StringVar(&signaturePath, "signature", "", "Detached OpenPGP signature file")
	cmd.Flags().StringArrayVar(&keyrings, "keyring", nil, "Public key file, armored or binary (repeatable)")

	return cmd
}
