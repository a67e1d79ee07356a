// Package entities defines core domain models and data structures.
package entities

// LocatedArtifact is a file picked out of a build output directory by name pattern.
// It is computed once per invocation and never stored.
type LocatedArtifact struct {
	Path string // absolute path
	Name string // base name, as passed to the packaging tool
}

// ArchiveResult describes an archive written by the package builder
type ArchiveResult struct {
	Path         string
	ChecksumPath string // empty when no sidecar was written
	SizeBytes    int64
}
