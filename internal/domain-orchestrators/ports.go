// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"

	"github.com/ochairo/packwright/internal/domain-adapters/gateways"
	"github.com/ochairo/packwright/internal/domain/entities"
)

// ArtifactLocator finds the executable jar in a build output directory
type ArtifactLocator interface {
	FindFirst(dir string, query gateways.ArtifactQuery) (*entities.LocatedArtifact, error)
}

// CommandRunner launches external tools
type CommandRunner interface {
	// Run fails with gateways.ErrCommandFailed on a non-zero exit status
	Run(ctx context.Context, spec gateways.CommandSpec) (*gateways.ExecuteResult, error)
	// Execute reports the outcome without interpreting the exit status
	Execute(ctx context.Context, spec gateways.CommandSpec) *gateways.ExecuteResult
}

// Archiver zips a packaged application image
type Archiver interface {
	ZipPath(rootDir, baseDir, zipPath string) (*entities.ArchiveResult, error)
}

// ChecksumWriter writes digest sidecars next to archives
type ChecksumWriter interface {
	WriteSidecar(path string) (string, error)
}

// BenchmarkFiles persists analyzer configuration and benchmark reports
type BenchmarkFiles interface {
	WriteConfiguration(path string, cfg entities.BenchmarkConfiguration) error
	WriteReport(path string, report *entities.BenchmarkReport) error
}

// CommitInfoReader describes the source revision of a working tree
type CommitInfoReader interface {
	Read(dir string) (*entities.CommitInfo, error)
}

func artifactQuery(settings entities.ArtifactSettings) (gateways.ArtifactQuery, error) {
	return gateways.NewArtifactQuery(settings.Pattern, settings.Require, settings.Exclude)
}
