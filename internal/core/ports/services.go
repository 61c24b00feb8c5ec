package ports

import (
	"context"
	"crypto/ed25519"
	"time"

	"commercial-paper-verifier/internal/core/domain"
)

// SignatureService handles ed25519 signing and verification over transaction ids.
type SignatureService interface {
	Sign(priv ed25519.PrivateKey, txID []byte) []byte
	Verify(key domain.PublicKey, txID []byte, signature []byte) bool
	// ResolveSigners checks every submitted signature against txID and returns
	// the distinct signer keys. Any signature that does not verify fails the call.
	ResolveSigners(txID []byte, sigs []SubmittedSignature) ([]domain.PublicKey, error)
}

// SubmittedSignature is one signature attached to a verification request.
type SubmittedSignature struct {
	PublicKey domain.PublicKey
	Signature []byte
}

// HashService derives content identifiers (SHA3-256).
type HashService interface {
	// TransactionID hashes the canonical encoding of command, time, inputs and outputs.
	TransactionID(tx domain.TransactionContext) []byte
	// VerdictKey identifies one (transaction, signer set) pair, independent of signer order.
	VerdictKey(txID []byte, signers []domain.PublicKey) string
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(clientID string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	ClientID string
}

// VerdictCache is the Redis-layer verdict lookup (fast path).
type VerdictCache interface {
	Get(ctx context.Context, key string) (*domain.Verdict, error) // Returns nil, nil on miss
	Set(ctx context.Context, key string, verdict *domain.Verdict, ttl time.Duration) error
}

// --- Service Ports (Business Logic) ---

// VerificationService runs one transaction through signature resolution and the contract.
type VerificationService interface {
	Verify(ctx context.Context, req VerifyRequest) (*domain.Verdict, error)
}

// VerifyRequest holds validated input for verification.
type VerifyRequest struct {
	Inputs     []domain.CommercialPaperState
	Outputs    []domain.CommercialPaperState
	Command    domain.Command
	Time       time.Time
	Signatures []SubmittedSignature
	ClientID   string
}

// ReportingService defines verdict lookup and aggregation.
type ReportingService interface {
	GetVerdict(ctx context.Context, txID string) (*domain.Verdict, error)
	GetStats(ctx context.Context, period string) (*VerdictStats, error)
}

// AuditService records API audit entries asynchronously.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
