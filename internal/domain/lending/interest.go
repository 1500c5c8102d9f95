package lending

import (
	"time"

	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// MonthlyInterest computes one month of simple interest on an outstanding
// amount: outstanding * rate / 100, rounded half-up to the paise. Pure
// function so the preview endpoint and accrual share one implementation.
func MonthlyInterest(outstanding valueobject.Money, ratePercent decimal.Decimal) (valueobject.Money, error) {
	if outstanding.IsNegative() {
		return valueobject.Zero(), shared.NewDomainError("INVALID_INPUT", "Outstanding amount cannot be negative")
	}
	if ratePercent.IsNegative() {
		return valueobject.Zero(), shared.NewDomainError("INVALID_INPUT", "Interest rate cannot be negative")
	}
	if outstanding.IsZero() || ratePercent.IsZero() {
		return valueobject.Zero(), nil
	}
	paise := decimal.NewFromInt(outstanding.Paise()).
		Mul(ratePercent).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	return valueobject.NewMoney(paise), nil
}

// ElapsedWholeMonths counts complete months between from and asOf.
// A month completes on the same day-of-month; partial months do not count.
func ElapsedWholeMonths(from, asOf time.Time) int {
	if !asOf.After(from) {
		return 0
	}
	months := (asOf.Year()-from.Year())*12 + int(asOf.Month()) - int(from.Month())
	if asOf.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// AccruedInterest computes the simple interest accrued on the account's
// current outstanding principal over the whole months elapsed since the
// taken date.
func (a *Account) AccruedInterest(asOf time.Time) (valueobject.Money, error) {
	monthly, err := MonthlyInterest(a.OutstandingPrincipal, a.MonthlyRatePercent)
	if err != nil {
		return valueobject.Zero(), err
	}
	months := ElapsedWholeMonths(a.TakenDate, asOf)
	total := valueobject.Zero()
	for i := 0; i < months; i++ {
		total = total.Add(monthly)
	}
	return total, nil
}
