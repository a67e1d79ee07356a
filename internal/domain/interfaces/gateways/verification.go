// Package gateways defines the contracts for filesystem and tool adapters.
package gateways

// ChecksumGateway computes and checks archive digests
type ChecksumGateway interface {
	// WriteSidecar writes "<hex>  <basename>" next to filePath and returns the sidecar path
	WriteSidecar(filePath string) (string, error)

	// VerifySidecar checks filePath against a sidecar written by WriteSidecar
	VerifySidecar(filePath, sidecarPath string) error
}

// SignatureGateway checks detached OpenPGP signatures against a local keyring
type SignatureGateway interface {
	ImportKeyFromFile(keyPath string) error
	// VerifySignatureFromFile returns the signer fingerprint on success
	VerifySignatureFromFile(filePath, sigPath string) (string, error)
}
