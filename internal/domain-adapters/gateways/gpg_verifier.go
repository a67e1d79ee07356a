package gateways

import (
	"fmt"

	"github.com/ochairo/packwright/internal/external-adapters/gpg"
)

// gpgVerifier wraps the external GPG adapter to implement the domain gateway interface
type gpgVerifier struct {
	verifier *gpg.Verifier
}

// NewGPGVerifier creates a new GPG verifier gateway
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewGPGVerifier() *gpgVerifier {
	return &gpgVerifier{
		verifier: gpg.NewVerifier(),
	}
}

// ImportKeyFromFile imports a GPG key from a local file
func (g *gpgVerifier) ImportKeyFromFile(keyPath string) error {
	if err := g.verifier.ImportKeyFromFile(keyPath); err != nil {
		return fmt.Errorf("failed to import GPG key from file: %w", err)
	}
	return nil
}

// VerifySignatureFromFile verifies a detached GPG signature from a local file
func (g *gpgVerifier) VerifySignatureFromFile(filePath, sigPath string) (string, error) {
	fingerprint, err := g.verifier.VerifySignatureFromFile(filePath, sigPath)
	if err != nil {
		return "", fmt.Errorf("GPG signature verification failed: %w", err)
	}
	return fingerprint, nil
}
