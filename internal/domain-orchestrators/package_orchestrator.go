package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ochairo/packwright/internal/domain-adapters/gateways"
	"github.com/ochairo/packwright/internal/domain/entities"
	"github.com/ochairo/packwright/internal/domain/interfaces"
)

// PackageOrchestrator builds the native application image and archives it
type PackageOrchestrator struct {
	locator   ArtifactLocator
	runner    CommandRunner
	archiver  Archiver
	checksums ChecksumWriter
	artifacts entities.ArtifactSettings
	settings  entities.PackageSettings
	workDir   string
	logger    interfaces.Logger
}

// PackageOrchestratorConfig holds configuration for the orchestrator
type PackageOrchestratorConfig struct {
	Artifacts entities.ArtifactSettings
	Package   entities.PackageSettings
	WorkDir   string
}

// NewPackageOrchestrator creates a new package orchestrator
func NewPackageOrchestrator(
	locator ArtifactLocator,
	runner CommandRunner,
	archiver Archiver,
	checksums ChecksumWriter,
	config PackageOrchestratorConfig,
	logger interfaces.Logger,
) *PackageOrchestrator {
	workDir := config.WorkDir
	if workDir == "" {
		workDir = "."
	}

	return &PackageOrchestrator{
		locator:   locator,
		runner:    runner,
		archiver:  archiver,
		checksums: checksums,
		artifacts: config.Artifacts,
		settings:  config.Package,
		workDir:   workDir,
		logger:    interfaces.EnsureLogger(logger),
	}
}

// PackageRequest names the archive and the directory produced by the packaging tool
type PackageRequest struct {
	ImagePrefix    string // archive name suffix, e.g. "ubuntu-latest"
	ExecutableFile string // path of the app image relative to the working directory
}

// PackageResult contains the result of a package operation
type PackageResult struct {
	Artifact        *entities.LocatedArtifact
	Command         []string
	Archive         *entities.ArchiveResult
	PackageDuration time.Duration
	TotalDuration   time.Duration
}

// Package locates the jar, runs the packaging tool and zips its output
func (o *PackageOrchestrator) Package(ctx context.Context, req PackageRequest) (*PackageResult, error) {
	startTime := time.Now()
	result := &PackageResult{}

	if req.ImagePrefix == "" || req.ExecutableFile == "" {
		return result, fmt.Errorf("image prefix and executable file are required")
	}

	query, err := artifactQuery(o.artifacts)
	if err != nil {
		return result, err
	}

	// Step 1: Locate the executable jar
	libsDir := filepath.Join(o.workDir, o.artifacts.Dir)
	artifact, err := o.locator.FindFirst(libsDir, query)
	if err != nil {
		return result, fmt.Errorf("failed to locate executable jar: %w", err)
	}
	result.Artifact = artifact
	o.logger.Info("located executable jar", interfaces.F("path", artifact.Path))

	// Step 2: Run the packaging tool
	targetOS := o.settings.Platform
	if targetOS == "" {
		targetOS = runtime.GOOS
	}
	result.Command = gateways.JPackageCommand(gateways.JPackageOptions{
		Tool:        o.settings.Tool,
		ImageName:   o.settings.ImageName,
		InputDir:    libsDir,
		Type:        o.settings.Type,
		JavaOptions: o.settings.JavaOptions,
		TargetOS:    targetOS,
	}, artifact.Name)

	packageStart := time.Now()
	if _, err := o.runner.Run(ctx, gateways.CommandSpec{
		Argv:        result.Command,
		WorkingDir:  o.workDir,
		Timeout:     time.Duration(o.settings.TimeoutMinutes) * time.Minute,
		Description: "package application image",
	}); err != nil {
		return result, fmt.Errorf("packaging failed: %w", err)
	}
	result.PackageDuration = time.Since(packageStart)

	// Step 3: Zip the image
	zipPath := filepath.Join(o.workDir, gateways.ArchiveName(o.settings.ImageName, req.ImagePrefix))
	archive, err := o.archiver.ZipPath(o.workDir, req.ExecutableFile, zipPath)
	if err != nil {
		return result, fmt.Errorf("archiving failed: %w", err)
	}
	result.Archive = archive

	// Step 4: Checksum sidecar
	if o.settings.Checksum {
		sidecar, err := o.checksums.WriteSidecar(archive.Path)
		if err != nil {
			return result, fmt.Errorf("failed to write checksum: %w", err)
		}
		archive.ChecksumPath = sidecar
	}

	result.TotalDuration = time.Since(startTime)
	o.logger.Info("package created",
		interfaces.F("archive", archive.Path),
		interfaces.F("size_bytes", archive.SizeBytes),
		interfaces.F("duration", result.TotalDuration))

	return result, nil
}

// GetPackageSummary returns a human-readable summary of the package run
func (r *PackageResult) GetPackageSummary() string {
	if r.Archive == nil {
		return "Package failed"
	}

	summary := fmt.Sprintf(`Package successful!
Jar: %s
Archive: %s (%d bytes)
Packaging: %v
Total: %v`,
		r.Artifact.Name,
		r.Archive.Path,
		r.Archive.SizeBytes,
		r.PackageDuration.Round(time.Millisecond),
		r.TotalDuration.Round(time.Millisecond),
	)
	if r.Archive.ChecksumPath != "" {
		summary += fmt.Sprintf("\nChecksum: %s", r.Archive.ChecksumPath)
	}
	return summary
}
