package accounting

import (
	"fmt"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateLine checks that exactly one side of the line is set and neither is negative.
func ValidateLine(line domain.JournalEntryLine) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return fmt.Errorf("%w: line for account %s has a negative amount", apperrors.ErrUnbalancedEntry, line.AccountCode)
	}
	if line.Debit.IsZero() == line.Credit.IsZero() {
		return fmt.Errorf("%w: line for account %s must have exactly one of debit or credit", apperrors.ErrUnbalancedEntry, line.AccountCode)
	}
	return nil
}

// ValidateEntryBalance checks every line and that debits equal credits at 2 dp.
func ValidateEntryBalance(lines []domain.JournalEntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: entry must have at least two lines", apperrors.ErrUnbalancedEntry)
	}

	debits, credits := decimal.Zero, decimal.Zero
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return err
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}

	if !debits.RoundBank(2).Equal(credits.RoundBank(2)) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s", apperrors.ErrUnbalancedEntry, debits.StringFixed(2), credits.StringFixed(2))
	}
	return nil
}
