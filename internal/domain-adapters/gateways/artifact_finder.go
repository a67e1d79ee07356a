// Package gateways provides adapter implementations for the filesystem and external tools.
package gateways

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ochairo/packwright/internal/domain/entities"
)

// ErrArtifactNotFound is returned when no file in the directory satisfies the query
var ErrArtifactNotFound = errors.New("no matching artifact found")

// ArtifactQuery selects a file from a build output directory.
// Pattern is searched (not anchored) in the full path; Require and Exclude
// are plain substrings checked against the full path too.
type ArtifactQuery struct {
	Pattern *regexp.Regexp
	Require []string
	Exclude []string
}

// NewArtifactQuery compiles pattern and builds a query
func NewArtifactQuery(pattern string, require, exclude []string) (ArtifactQuery, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return ArtifactQuery{}, fmt.Errorf("invalid artifact pattern %q: %w", pattern, err)
	}
	return ArtifactQuery{Pattern: re, Require: require, Exclude: exclude}, nil
}

// Matches reports whether fullPath satisfies the query
func (q ArtifactQuery) Matches(fullPath string) bool {
	if q.Pattern != nil && !q.Pattern.MatchString(fullPath) {
		return false
	}
	for _, s := range q.Require {
		if !strings.Contains(fullPath, s) {
			return false
		}
	}
	for _, s := range q.Exclude {
		if s != "" && strings.Contains(fullPath, s) {
			return false
		}
	}
	return true
}

// ArtifactFinder provides utilities for locating build artifacts
type ArtifactFinder struct{}

// NewArtifactFinder creates a new artifact finder
func NewArtifactFinder() *ArtifactFinder {
	return &ArtifactFinder{}
}

// FindFirst returns the first regular file in dir matching query.
//
// Entries are visited in the order the filesystem returns them, which is not
// sorted and may differ between platforms. When several files match, which
// one wins is therefore filesystem dependent.
func (f *ArtifactFinder) FindFirst(dir string, query ArtifactQuery) (*entities.LocatedArtifact, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	//nolint:gosec // G304: dir is the configured build output directory
	d, err := os.Open(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifacts directory: %w", err)
	}
	//nolint:errcheck // Defer close on read-only directory
	defer d.Close()

	// (*os.File).ReadDir keeps directory order; os.ReadDir would sort by name.
	entries, err := d.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts directory: %w", err)
	}

	for _, entry := range entries {
		fullPath := filepath.Join(absDir, entry.Name())
		if !isRegularFile(entry, fullPath) {
			continue
		}
		if query.Matches(fullPath) {
			return &entities.LocatedArtifact{
				Path: fullPath,
				Name: entry.Name(),
			}, nil
		}
	}

	return nil, fmt.Errorf("%w in %s (pattern %s)", ErrArtifactNotFound, absDir, patternString(query))
}

// isRegularFile follows symlinks the way os.path.isfile does
func isRegularFile(entry os.DirEntry, fullPath string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(fullPath)
	return err == nil && info.Mode().IsRegular()
}

func patternString(q ArtifactQuery) string {
	if q.Pattern == nil {
		return "<any>"
	}
	return q.Pattern.String()
}
