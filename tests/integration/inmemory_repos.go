package integration

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"commercial-paper-verifier/internal/core/domain"
	"commercial-paper-verifier/internal/core/ports"
)

// --- In-Memory Verdict Repo ---

type inMemoryVerdictRepo struct {
	mu       sync.RWMutex
	verdicts []domain.Verdict
	fail     bool
}

func newInMemoryVerdictRepo() *inMemoryVerdictRepo {
	return &inMemoryVerdictRepo{}
}

var errRepoDown = errors.New("verdict store unavailable")

func (r *inMemoryVerdictRepo) Save(ctx context.Context, v *domain.Verdict) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errRepoDown
	}
	r.verdicts = append(r.verdicts, *v)
	return nil
}

func (r *inMemoryVerdictRepo) GetByTransactionID(ctx context.Context, txID string) (*domain.Verdict, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.fail {
		return nil, errRepoDown
	}
	var latest *domain.Verdict
	for i := range r.verdicts {
		v := r.verdicts[i]
		if v.TransactionID != txID {
			continue
		}
		if latest == nil || !v.VerifiedAt.Before(latest.VerifiedAt) {
			latest = &v
		}
	}
	return latest, nil
}

func (r *inMemoryVerdictRepo) Stats(ctx context.Context, since *time.Time) (*ports.VerdictStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.fail {
		return nil, errRepoDown
	}
	stats := &ports.VerdictStats{ByCommand: make(map[domain.Command]*ports.CommandStats)}
	for _, v := range r.verdicts {
		if since != nil && v.VerifiedAt.Before(*since) {
			continue
		}
		stats.Add(v.Command, v.Accepted, 1)
	}
	return stats, nil
}

func (r *inMemoryVerdictRepo) setFailing(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = fail
}

func (r *inMemoryVerdictRepo) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.verdicts)
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditLog
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *inMemoryAuditRepo) snapshot() []domain.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.entries)
}
