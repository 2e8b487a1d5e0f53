package pgsql

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSequenceRepository hands out per-prefix-per-year sequence values using
// a single atomic upsert. COUNT(*)+1 style numbering races under concurrent
// inserts; the ON CONFLICT increment does not.
type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for durable sequence counters.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSequenceRepository implements portsrepo.SequenceRepository
var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

const nextValueQuery = `
	INSERT INTO sequence_counters (prefix, year, current_value)
	VALUES ($1, $2, 1)
	ON CONFLICT (prefix, year)
	DO UPDATE SET current_value = sequence_counters.current_value + 1
	RETURNING current_value;
`

// NextValue atomically increments and returns the counter for (prefix, year).
func (r *PgxSequenceRepository) NextValue(ctx context.Context, prefix string, year int) (int64, error) {
	var value int64
	if err := r.Pool.QueryRow(ctx, nextValueQuery, prefix, year).Scan(&value); err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance sequence "+prefix, err)
	}
	return value, nil
}

// NextValueInTx does the same inside an enclosing transaction. The counter
// row stays locked until the transaction ends, so a posting that rolls back
// releases its numbers' slot together with everything else.
func (r *PgxSequenceRepository) NextValueInTx(ctx context.Context, tx pgx.Tx, prefix string, year int) (int64, error) {
	var value int64
	if err := tx.QueryRow(ctx, nextValueQuery, prefix, year).Scan(&value); err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance sequence "+prefix, err)
	}
	return value, nil
}
