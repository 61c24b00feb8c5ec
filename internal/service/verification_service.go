package service

import (
	"context"
	"encoding/hex"
	"time"

	"commercial-paper-verifier/internal/core/contract"
	"commercial-paper-verifier/internal/core/domain"
	"commercial-paper-verifier/internal/core/ports"

	"github.com/rs/zerolog"
)

// VerificationServiceImpl implements ports.VerificationService.
// It resolves signers, consults the verdict cache, runs the contract and
// records the verdict. Cache and repository failures are logged and never
// change the outcome: a verdict can always be recomputed.
type VerificationServiceImpl struct {
	sigSvc   ports.SignatureService
	hashSvc  ports.HashService
	cache    ports.VerdictCache      // nil disables caching
	repo     ports.VerdictRepository // nil disables the verdict log
	cacheTTL time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewVerificationService creates a new VerificationServiceImpl.
func NewVerificationService(
	sigSvc ports.SignatureService,
	hashSvc ports.HashService,
	cache ports.VerdictCache,
	repo ports.VerdictRepository,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		sigSvc:   sigSvc,
		hashSvc:  hashSvc,
		cache:    cache,
		repo:     repo,
		cacheTTL: cacheTTL,
		now:      time.Now,
		log:      log,
	}
}

// Verify judges one transaction. A rejected transaction is not an error: it
// comes back as a verdict with Accepted false. Errors are reserved for
// requests that cannot be judged, such as a signature that does not verify.
func (s *VerificationServiceImpl) Verify(ctx context.Context, req ports.VerifyRequest) (*domain.Verdict, error) {
	tx := domain.TransactionContext{
		Inputs:  req.Inputs,
		Outputs: req.Outputs,
		Command: req.Command,
		Time:    req.Time,
	}

	rawID := s.hashSvc.TransactionID(tx)
	txID := hex.EncodeToString(rawID)

	signers, err := s.sigSvc.ResolveSigners(rawID, req.Signatures)
	if err != nil {
		s.log.Warn().Err(err).
			Str("transaction_id", txID).
			Str("client_id", req.ClientID).
			Msg("signature resolution failed")
		return nil, err
	}
	tx.Signers = signers

	key := s.hashSvc.VerdictKey(rawID, signers)

	// Layer 1: Redis verdict cache
	if s.cacheEnabled() {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("verdict cache lookup failed, verifying")
		}
		if cached != nil {
			s.log.Debug().Str("transaction_id", txID).Msg("verdict cache hit")
			return cached, nil
		}
	}

	// Layer 2: the contract itself
	verifyErr := contract.Verify(tx)
	verdict := domain.NewVerdict(txID, req.Command, verifyErr, s.now().UTC())
	verdict.ErrorCode = CodeFor(verifyErr)

	event := s.log.Info()
	if !verdict.Accepted {
		event = s.log.Warn().Str("kind", string(verdict.Kind)).Str("rule", verdict.Rule)
	}
	event.
		Str("transaction_id", txID).
		Str("command", string(req.Command)).
		Int("signers", len(signers)).
		Bool("accepted", verdict.Accepted).
		Msg("transaction verified")

	if s.repo != nil {
		if err := s.repo.Save(ctx, verdict); err != nil {
			s.log.Warn().Err(err).Str("transaction_id", txID).Msg("failed to record verdict")
		}
	}
	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, key, verdict, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to cache verdict")
		}
	}

	return verdict, nil
}

func (s *VerificationServiceImpl) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}
