package gateways

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/packwright/internal/domain/entities"
)

// JPackageOptions holds the fixed options passed to the native packaging tool
type JPackageOptions struct {
	Tool        string // executable name, usually "jpackage"
	ImageName   string
	InputDir    string
	Type        string
	JavaOptions []string
	TargetOS    string // GOOS value; "windows" adds --win-console
}

// JPackageCommand builds the packaging tool argv for the given main jar
func JPackageCommand(opts JPackageOptions, mainJar string) []string {
	tool := opts.Tool
	if tool == "" {
		tool = "jpackage"
	}

	argv := []string{
		tool,
		"--name", opts.ImageName,
		"--input", opts.InputDir,
		"--main-jar", mainJar,
	}
	if opts.TargetOS == "windows" {
		argv = append(argv, "--win-console")
	}
	if opts.Type != "" {
		argv = append(argv, "--type", opts.Type)
	}
	for _, opt := range opts.JavaOptions {
		argv = append(argv, "--java-options", opt)
	}
	return argv
}

// ArchiveName returns "<image>_<prefix>.zip"
func ArchiveName(imageName, prefix string) string {
	return fmt.Sprintf("%s_%s.zip", imageName, prefix)
}

// Packager handles archiving packaged application images
type Packager struct{}

// NewPackager creates a new packager
func NewPackager() *Packager {
	return &Packager{}
}

// ZipPath compresses rootDir/baseDir into zipPath.
// Entry names are relative to rootDir, so every entry starts with baseDir.
// baseDir may name a directory (app image) or a single file.
func (p *Packager) ZipPath(rootDir, baseDir, zipPath string) (*entities.ArchiveResult, error) {
	source := filepath.Join(rootDir, baseDir)
	if _, err := os.Lstat(source); err != nil {
		return nil, fmt.Errorf("failed to stat archive source: %w", err)
	}

	if dir := filepath.Dir(zipPath); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := p.createZip(rootDir, source, zipPath); err != nil {
		return nil, fmt.Errorf("failed to create zip archive: %w", err)
	}

	info, err := os.Stat(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat zip archive: %w", err)
	}

	return &entities.ArchiveResult{
		Path:      zipPath,
		SizeBytes: info.Size(),
	}, nil
}

func (p *Packager) createZip(rootDir, source, zipPath string) (err error) {
	//nolint:gosec // G304: zipPath is constructed for package output
	file, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create zip file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	zipWriter := zip.NewWriter(file)
	defer func() {
		if cerr := zipWriter.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	absZip, _ := filepath.Abs(zipPath)

	return filepath.Walk(source, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Never add the archive to itself when it is written inside the source tree
		if absPath, _ := filepath.Abs(path); absPath == absZip {
			return nil
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return fmt.Errorf("failed to create zip header: %w", err)
		}
		header.Name = filepath.ToSlash(relPath)

		switch {
		case info.IsDir():
			header.Name = strings.TrimSuffix(header.Name, "/") + "/"
			header.Method = zip.Store
			_, err := zipWriter.CreateHeader(header)
			return err

		case info.Mode()&os.ModeSymlink != 0:
			// Stored the way Info-ZIP does: symlink mode bits, target as content
			target, err := os.Readlink(path)
			if err != nil {
				return fmt.Errorf("failed to read symlink %s: %w", path, err)
			}
			header.Method = zip.Store
			w, err := zipWriter.CreateHeader(header)
			if err != nil {
				return fmt.Errorf("failed to write zip header: %w", err)
			}
			_, err = io.WriteString(w, target)
			return err

		case info.Mode().IsRegular():
			header.Method = zip.Deflate
			w, err := zipWriter.CreateHeader(header)
			if err != nil {
				return fmt.Errorf("failed to write zip header: %w", err)
			}
			return copyFile(w, path)

		default:
			return nil
		}
	})
}

func copyFile(w io.Writer, path string) error {
	//nolint:gosec // G304: path comes from filepath.Walk over the app image
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write file to zip: %w", err)
	}
	return nil
}
