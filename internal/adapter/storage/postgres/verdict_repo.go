package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commercial-paper-verifier/internal/core/domain"
	"commercial-paper-verifier/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// VerdictRepo implements ports.VerdictRepository.
// Every verification appends a row; a transaction id may have several
// verdicts when it was submitted with different signer sets.
type VerdictRepo struct {
	pool Pool
}

// NewVerdictRepo creates a new VerdictRepo.
func NewVerdictRepo(pool Pool) *VerdictRepo {
	return &VerdictRepo{pool: pool}
}

// Save appends a verdict.
func (r *VerdictRepo) Save(ctx context.Context, v *domain.Verdict) error {
	query := `INSERT INTO verdicts (id, transaction_id, command, accepted, kind, rule, error_code, reason, verified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		uuid.New(), v.TransactionID, string(v.Command), v.Accepted,
		string(v.Kind), v.Rule, v.ErrorCode, v.Reason, v.VerifiedAt,
	)
	if err != nil {
		return fmt.Errorf("insert verdict: %w", err)
	}
	return nil
}

// GetByTransactionID fetches the latest verdict for a transaction id.
// Returns nil, nil when none exists.
func (r *VerdictRepo) GetByTransactionID(ctx context.Context, txID string) (*domain.Verdict, error) {
	query := `SELECT transaction_id, command, accepted, kind, rule, error_code, reason, verified_at
		FROM verdicts WHERE transaction_id = $1 ORDER BY verified_at DESC LIMIT 1`

	var (
		v       domain.Verdict
		command string
		kind    string
	)
	err := r.pool.QueryRow(ctx, query, txID).Scan(
		&v.TransactionID, &command, &v.Accepted, &kind,
		&v.Rule, &v.ErrorCode, &v.Reason, &v.VerifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan verdict: %w", err)
	}
	v.Command = domain.Command(command)
	v.Kind = domain.Kind(kind)
	return &v, nil
}

// Stats counts verdicts per command and outcome.
func (r *VerdictRepo) Stats(ctx context.Context, since *time.Time) (*ports.VerdictStats, error) {
	query := `SELECT command, accepted, COUNT(*) FROM verdicts`
	var args []any
	if since != nil {
		query += ` WHERE verified_at >= $1`
		args = append(args, *since)
	}
	query += ` GROUP BY command, accepted`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("verdict stats: %w", err)
	}
	defer rows.Close()

	stats := &ports.VerdictStats{ByCommand: make(map[domain.Command]*ports.CommandStats)}
	for rows.Next() {
		var (
			command  string
			accepted bool
			count    int64
		)
		if err := rows.Scan(&command, &accepted, &count); err != nil {
			return nil, fmt.Errorf("scan verdict stats row: %w", err)
		}
		stats.Add(domain.Command(command), accepted, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdict stats rows: %w", err)
	}
	return stats, nil
}
