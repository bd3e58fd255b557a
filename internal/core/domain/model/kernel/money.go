package kernel

import (
	"github.com/shopspring/decimal"
)

// Currency is the settlement currency for COD, charges and payouts.
const Currency = "PKR"

// SettlementTolerance is the largest absolute difference accepted when an
// entered settlement is matched against an expected total.
var SettlementTolerance = decimal.RequireFromString("0.01")

// AmountsMatch reports |expected - entered| < SettlementTolerance.
func AmountsMatch(expected, entered decimal.Decimal) bool {
	return expected.Sub(entered).Abs().LessThan(SettlementTolerance)
}

// SumAmounts adds a list of amounts; an empty list sums to zero.
func SumAmounts(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// FormatMoney renders an amount for operator-facing messages, e.g. "PKR 1808.60".
func FormatMoney(amount decimal.Decimal) string {
	return Currency + " " + amount.StringFixed(2)
}
