package gateways

import (
	_ "crypto/sha256" // registers digest.SHA256
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencontainers/go-digest"
)

// ChecksumWriter computes SHA-256 digests of release archives and manages
// "<archive>.sha256" sidecar files in the sha256sum format.
type ChecksumWriter struct{}

// NewChecksumWriter creates a new checksum writer
func NewChecksumWriter() *ChecksumWriter {
	return &ChecksumWriter{}
}

// Compute returns the sha256 digest of filePath
func (c *ChecksumWriter) Compute(filePath string) (digest.Digest, error) {
	//nolint:gosec // G304: File path is the archive being checksummed
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	d, err := digest.SHA256.FromReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return d, nil
}

// WriteSidecar writes "<hex>  <basename>\n" to filePath + ".sha256"
func (c *ChecksumWriter) WriteSidecar(filePath string) (string, error) {
	d, err := c.Compute(filePath)
	if err != nil {
		return "", err
	}

	sidecarPath := filePath + ".sha256"
	content := fmt.Sprintf("%s  %s\n", d.Encoded(), filepath.Base(filePath))
	if err := os.WriteFile(sidecarPath, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write SHA256 file: %w", err)
	}

	return sidecarPath, nil
}

// VerifySidecar checks filePath against the first hash in sidecarPath.
// Both "<hex>  <name>" and bare "<hex>" sidecars are accepted, as is a
// "sha256:<hex>" digest string.
func (c *ChecksumWriter) VerifySidecar(filePath, sidecarPath string) error {
	//nolint:gosec // G304: sidecar path is user-provided for verification
	data, err := os.ReadFile(sidecarPath)
	if err != nil {
		return fmt.Errorf("failed to read checksum file: %w", err)
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return fmt.Errorf("checksum file %s is empty", sidecarPath)
	}

	expected := digest.Digest(fields[0])
	if !strings.Contains(fields[0], ":") {
		expected = digest.NewDigestFromEncoded(digest.SHA256, strings.ToLower(fields[0]))
	}
	if err := expected.Validate(); err != nil {
		return fmt.Errorf("invalid checksum in %s: %w", sidecarPath, err)
	}

	//nolint:gosec // G304: File path is user-provided for checksum verification
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	actual, err := expected.Algorithm().FromReader(f)
	if err != nil {
		return fmt.Errorf("failed to hash file: %w", err)
	}

	if actual != expected {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected.Encoded(), actual.Encoded())
	}
	return nil
}
