package accrual

import "github.com/shopspring/decimal"

// DefaultRate is the standard local leave accrual of 2.5 days per month.
// The rate is an input per request, not a constant, so grades with different
// conditions of service can accrue at their own rate.
const DefaultRate = 2.5

// Days returns the whole leave days earned over monthsElapsed at ratePerMonth,
// i.e. floor(months x rate). Decimal arithmetic keeps 5 x 2.5 at exactly 12.5
// before the floor instead of trusting float64 rounding.
func Days(monthsElapsed int, ratePerMonth float64) int {
	if monthsElapsed <= 0 {
		return 0
	}

	earned := decimal.NewFromInt(int64(monthsElapsed)).Mul(decimal.NewFromFloat(ratePerMonth))
	return int(earned.Floor().IntPart())
}
