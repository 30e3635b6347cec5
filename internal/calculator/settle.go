package calculator

import "github.com/shopspring/decimal"

// settleEpsilon is the smallest amount worth transferring (one cent).
var settleEpsilon = decimal.New(1, -2)

// Suggestion represents a transfer from a debtor to a creditor.
type Suggestion struct {
	Debtor   string // Person who pays
	Creditor string // Person who is paid
	Amount   decimal.Decimal
}

type position struct {
	member    string
	remaining decimal.Decimal
}

// FullySettled reports whether every pending value is within a cent of zero.
func FullySettled(pending map[string]decimal.Decimal) bool {
	for _, p := range pending {
		if p.Abs().GreaterThanOrEqual(settleEpsilon) {
			return false
		}
	}
	return true
}

// Suggest pairs debtors with creditors greedily, both taken in member order.
// Each debtor pays the current creditor min(debt, credit); a creditor is dropped once
// fully paid and a debtor stops once their debt is cleared.
//
// The result is deterministic for a given member order but is not guaranteed to use
// the fewest possible transfers.
func Suggest(members []string, pending map[string]decimal.Decimal) ([]Suggestion, error) {
	if _, err := memberIndex(members); err != nil {
		return nil, err
	}
	if FullySettled(pending) {
		return nil, nil
	}

	var creditors, debtors []position
	for _, m := range members {
		p := pending[m]
		switch {
		case p.GreaterThanOrEqual(settleEpsilon):
			creditors = append(creditors, position{member: m, remaining: p})
		case p.Neg().GreaterThanOrEqual(settleEpsilon):
			debtors = append(debtors, position{member: m, remaining: p.Neg()})
		}
	}

	var suggestions []Suggestion
	next := 0
	for _, debtor := range debtors {
		debt := debtor.remaining
		for next < len(creditors) && debt.IsPositive() {
			creditor := &creditors[next]
			amount := decimal.Min(debt, creditor.remaining)

			suggestions = append(suggestions, Suggestion{
				Debtor:   debtor.member,
				Creditor: creditor.member,
				Amount:   amount,
			})

			debt = debt.Sub(amount)
			creditor.remaining = creditor.remaining.Sub(amount)
			if creditor.remaining.IsZero() {
				next++
			}
		}
	}

	return suggestions, nil
}
