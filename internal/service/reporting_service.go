package service

import (
	"context"
	"regexp"
	"time"

	"commercial-paper-verifier/internal/core/domain"
	"commercial-paper-verifier/internal/core/ports"
	"commercial-paper-verifier/pkg/apperror"
)

var transactionIDRe = regexp.MustCompile(`^[0-9a-f]{64}$`)

// reportingService implements ports.ReportingService.
type reportingService struct {
	repo ports.VerdictRepository
	now  func() time.Time
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo ports.VerdictRepository) ports.ReportingService {
	return &reportingService{repo: repo, now: time.Now}
}

// GetVerdict returns the latest recorded verdict for a transaction id.
func (s *reportingService) GetVerdict(ctx context.Context, txID string) (*domain.Verdict, error) {
	if !transactionIDRe.MatchString(txID) {
		return nil, apperror.Validation("transaction id must be 64 lower-case hex characters")
	}

	verdict, err := s.repo.GetByTransactionID(ctx, txID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if verdict == nil {
		return nil, apperror.ErrNotFound("verdict")
	}
	return verdict, nil
}

// GetStats returns verdict counts for the period: day, week, month or all.
func (s *reportingService) GetStats(ctx context.Context, period string) (*ports.VerdictStats, error) {
	var since *time.Time

	switch period {
	case "day":
		t := s.now().AddDate(0, 0, -1)
		since = &t
	case "week":
		t := s.now().AddDate(0, 0, -7)
		since = &t
	case "month":
		t := s.now().AddDate(0, -1, 0)
		since = &t
	case "all", "":
		// No time filter
	default:
		return nil, apperror.Validation("invalid period: must be day, week, month, or all")
	}

	stats, err := s.repo.Stats(ctx, since)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return stats, nil
}
