package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MinimumChargeCents is the smallest amount the payment gateway accepts.
const MinimumChargeCents int64 = 50

// AmountToCents converts a decimal monetary amount into integer cents, the
// unit all ledger arithmetic runs in. Amounts must be positive and must not
// carry sub-cent precision.
func AmountToCents(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() {
		return 0, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	cents := amount.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("%w: amount has sub-cent precision", ErrInvalidInput)
	}
	return cents.IntPart(), nil
}

// CentsToAmount renders integer cents back into a decimal amount for
// responses.
func CentsToAmount(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}
