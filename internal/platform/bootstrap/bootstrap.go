package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// systemUserID stamps seed rows so audit fields never point at a real actor.
const systemUserID = "system"

type seedAccount struct {
	code         string
	name         string
	accountType  string
	allowPosting bool
}

// A minimal chart of accounts so a fresh install can post its first entry.
var seedAccounts = []seedAccount{
	{"1000", "Cash", "ASSET", true},
	{"1200", "Accounts Receivable", "ASSET", true},
	{"2000", "Accounts Payable", "LIABILITY", true},
	{"3000", "Owner's Equity", "EQUITY", true},
	{"4000", "Revenue", "REVENUE", true},
	{"5000", "Operating Expenses", "EXPENSE", true},
}

// Seed idempotently inserts the starter chart of accounts and an OPEN period
// covering the current month. Rows that already exist are left untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	now := time.Now().UTC()

	accountQuery := `
		INSERT INTO accounts (account_id, code, name, account_type, parent_account_id, description, is_active, allow_posting, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, NULL, '', TRUE, $5, $6, $7, $6, $7)
		ON CONFLICT (code) DO NOTHING;
	`
	for _, acc := range seedAccounts {
		if _, err := pool.Exec(ctx, accountQuery,
			uuid.NewString(), acc.code, acc.name, acc.accountType, acc.allowPosting, now, systemUserID,
		); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", acc.code, err)
		}
	}

	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)
	periodName := periodStart.Format("2006-01")

	periodQuery := `
		INSERT INTO financial_periods (period_id, name, start_date, end_date, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, 'OPEN', $5, $6, $5, $6)
		ON CONFLICT (name) DO NOTHING;
	`
	if _, err := pool.Exec(ctx, periodQuery,
		uuid.NewString(), periodName, periodStart, periodEnd, now, systemUserID,
	); err != nil {
		return fmt.Errorf("failed to seed period %s: %w", periodName, err)
	}

	logger.Info("Seed data ensured",
		slog.Int("accounts", len(seedAccounts)),
		slog.String("period", periodName))
	return nil
}
