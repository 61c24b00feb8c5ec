package service

import (
	"crypto/ed25519"
	"fmt"

	"commercial-paper-verifier/internal/core/domain"
	"commercial-paper-verifier/internal/core/ports"
	"commercial-paper-verifier/pkg/apperror"
)

// Ed25519SignatureService implements ports.SignatureService.
// Signatures are always over the raw 32-byte transaction id.
type Ed25519SignatureService struct{}

// NewEd25519SignatureService creates a new ed25519 signature service.
func NewEd25519SignatureService() *Ed25519SignatureService {
	return &Ed25519SignatureService{}
}

// Sign signs txID with priv.
func (s *Ed25519SignatureService) Sign(priv ed25519.PrivateKey, txID []byte) []byte {
	return ed25519.Sign(priv, txID)
}

// Verify checks signature over txID against key.
func (s *Ed25519SignatureService) Verify(key domain.PublicKey, txID []byte, signature []byte) bool {
	if key.IsZero() || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(key.Ed25519(), txID, signature)
}

// ResolveSigners turns submitted signatures into the verified signer set.
// The first signature that does not verify aborts the whole request.
func (s *Ed25519SignatureService) ResolveSigners(txID []byte, sigs []ports.SubmittedSignature) ([]domain.PublicKey, error) {
	signers := make([]domain.PublicKey, 0, len(sigs))
	seen := make(map[domain.PublicKey]struct{}, len(sigs))

	for i, sig := range sigs {
		if len(sig.Signature) != ed25519.SignatureSize {
			appErr := apperror.ErrMalformedSignature()
			appErr.Err = fmt.Errorf("signature %d is %d bytes, want %d", i, len(sig.Signature), ed25519.SignatureSize)
			return nil, appErr
		}
		if !s.Verify(sig.PublicKey, txID, sig.Signature) {
			appErr := apperror.ErrInvalidSignature()
			appErr.Err = fmt.Errorf("signature %d does not verify for %s", i, sig.PublicKey)
			return nil, appErr
		}
		if _, dup := seen[sig.PublicKey]; dup {
			continue
		}
		seen[sig.PublicKey] = struct{}{}
		signers = append(signers, sig.PublicKey)
	}
	return signers, nil
}
