package ports

import (
	"context"
	"time"

	"commercial-paper-verifier/internal/core/domain"
)

// VerdictRepository persists verification verdicts. It never stores ledger states.
type VerdictRepository interface {
	Save(ctx context.Context, verdict *domain.Verdict) error
	// GetByTransactionID returns the most recent verdict for a transaction id,
	// or nil, nil when none was recorded.
	GetByTransactionID(ctx context.Context, txID string) (*domain.Verdict, error)
	// Stats aggregates verdicts recorded at or after since (nil = all time).
	Stats(ctx context.Context, since *time.Time) (*VerdictStats, error)
}

// VerdictStats holds aggregated verdict counts for reporting.
type VerdictStats struct {
	Total     int64                            `json:"total"`
	Accepted  int64                            `json:"accepted"`
	Rejected  int64                            `json:"rejected"`
	ByCommand map[domain.Command]*CommandStats `json:"by_command"`
}

// CommandStats is the per-command slice of VerdictStats.
type CommandStats struct {
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

// Add folds count verdicts of one command and outcome into the totals.
func (s *VerdictStats) Add(cmd domain.Command, accepted bool, count int64) {
	if s.ByCommand == nil {
		s.ByCommand = make(map[domain.Command]*CommandStats)
	}
	cs, ok := s.ByCommand[cmd]
	if !ok {
		cs = &CommandStats{}
		s.ByCommand[cmd] = cs
	}
	s.Total += count
	if accepted {
		s.Accepted += count
		cs.Accepted += count
	} else {
		s.Rejected += count
		cs.Rejected += count
	}
}

// AuditRepository persists API audit entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
