package accounting

import (
	"fmt"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResult is the outcome of validating a set of journal lines.
type BalanceResult struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Delta       decimal.Decimal // TotalDebit - TotalCredit
	Balanced    bool
}

// ValidateBalance computes debit and credit totals for the given lines and
// reports whether they balance within domain.BalanceTolerance. It is a pure
// function, re-run at create, update and again just before posting.
func ValidateBalance(lines []domain.JournalLine) BalanceResult {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	delta := totalDebit.Sub(totalCredit)
	return BalanceResult{
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Delta:       delta,
		Balanced:    delta.Abs().LessThanOrEqual(domain.BalanceTolerance),
	}
}

// ValidateLineAmounts rejects negative amounts. A line carrying both a debit
// and a credit is legal (corrections) and left to the caller to flag.
func ValidateLineAmounts(lines []domain.JournalLine) error {
	for _, line := range lines {
		if line.Debit.IsNegative() {
			return fmt.Errorf("line %d: debit amount must not be negative", line.LineNumber)
		}
		if line.Credit.IsNegative() {
			return fmt.Errorf("line %d: credit amount must not be negative", line.LineNumber)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return fmt.Errorf("line %d: debit and credit are both zero", line.LineNumber)
		}
	}
	return nil
}

// SignedAmount applies the accounting sign convention to a ledger row's net
// movement for balance reporting.
// DEBIT to ASSET/EXPENSE increases the balance; CREDIT decreases it.
// For LIABILITY/EQUITY/REVENUE the convention is inverted.
func SignedAmount(row domain.LedgerRow, accountType domain.AccountType) (decimal.Decimal, error) {
	net := row.Debit.Sub(row.Credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, row.AccountID)
	}
}
