package services

import (
	"fmt"

	"github.com/ochairo/packwright/internal/domain/interfaces"
	"github.com/ochairo/packwright/internal/domain/interfaces/gateways"
)

// ArchiveVerificationRequest lists the optional integrity checks for an archive.
// Empty paths skip the corresponding check.
type ArchiveVerificationRequest struct {
	ArchivePath   string
	ChecksumPath  string
	SignaturePath string
	KeyringPaths  []string
}

// ArchiveVerificationResult records which checks ran
type ArchiveVerificationResult struct {
	ChecksumVerified  bool
	SignatureVerified bool
	SignerFingerprint string
}

// ArchiveVerificationService checks archive checksums and detached signatures
type ArchiveVerificationService struct {
	checksums  gateways.ChecksumGateway
	signatures gateways.SignatureGateway
	logger     interfaces.Logger
}

// NewArchiveVerificationService creates a new archive verification service
func NewArchiveVerificationService(
	checksums gateways.ChecksumGateway,
	signatures gateways.SignatureGateway,
	logger interfaces.Logger,
) *ArchiveVerificationService {
	return &ArchiveVerificationService{
		checksums:  checksums,
		signatures: signatures,
		logger:     interfaces.EnsureLogger(logger),
	}
}

// Verify runs every requested check, stopping at the first failure
func (s *ArchiveVerificationService) Verify(req ArchiveVerificationRequest) (*ArchiveVerificationResult, error) {
	result := &ArchiveVerificationResult{}

	if req.ChecksumPath != "" {
		if err := s.checksums.VerifySidecar(req.ArchivePath, req.ChecksumPath); err != nil {
			return result, fmt.Errorf("checksum verification failed: %w", err)
		}
		result.ChecksumVerified = true
		s.logger.Info("checksum verified", interfaces.F("archive", req.ArchivePath))
	}

	if req.SignaturePath == "" {
		return result, nil
	}

	if len(req.KeyringPaths) == 0 {
		return result, fmt.Errorf("a keyring is required to verify %s", req.SignaturePath)
	}
	for _, keyPath := range req.KeyringPaths {
		if err := s.signatures.ImportKeyFromFile(keyPath); err != nil {
			return result, err
		}
	}

	fingerprint, err := s.signatures.VerifySignatureFromFile(req.ArchivePath, req.SignaturePath)
	if err != nil {
		return result, err
	}
	result.SignatureVerified = true
	result.SignerFingerprint = fingerprint
	s.logger.Info("signature verified",
		interfaces.F("archive", req.ArchivePath),
		interfaces.F("signer", fingerprint))

	return result, nil
}
