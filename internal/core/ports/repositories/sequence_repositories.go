package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SequenceRepository hands out unique, monotonically increasing sequence
// values scoped per prefix and year. Implementations must be safe under
// concurrent callers; a read-then-write counter is not acceptable here.
type SequenceRepository interface {
	// NextValue atomically increments and returns the counter for
	// (prefix, year) using the pool.
	NextValue(ctx context.Context, prefix string, year int) (int64, error)

	// NextValueInTx does the same inside an enclosing transaction, so a
	// rolled-back posting does not consume committed numbers out of order.
	NextValueInTx(ctx context.Context, tx pgx.Tx, prefix string, year int) (int64, error)
}
