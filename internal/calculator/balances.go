package calculator

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance represents a direct member-to-member transfer not tied to any expense.
type Advance struct {
	ID        string
	From      string // Member who paid
	To        string // Member who received
	Amount    decimal.Decimal
	Timestamp time.Time
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	Member          string
	TotalPaid       decimal.Decimal // Sum of expenses this member paid for
	AdvancePaid     decimal.Decimal // Advances sent to other members
	AdvanceReceived decimal.Decimal // Advances received from other members
	ShareOwed       decimal.Decimal // Equal share of all expenses, same for everyone
	Pending         decimal.Decimal // Positive = owed by the group, Negative = owes the group
	NetBalance      decimal.Decimal // Outstanding split entries and advances, see Aggregate
	OwesTo          string          // Display hint only, set when Pending is negative
}

// TotalPaid sums expense amounts per payer. Every member gets an entry.
// Expenses with unknown payers are ignored here; ComputeSplits reports them.
func TotalPaid(expenses []Expense, members []string) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(members))
	for _, m := range members {
		totals[m] = decimal.Zero
	}
	for _, exp := range expenses {
		if _, ok := totals[exp.Payer]; !ok || exp.Amount.IsNegative() {
			continue
		}
		totals[exp.Payer] = totals[exp.Payer].Add(exp.Amount)
	}
	return totals
}

// Aggregate folds split entries and advances into per-member balances.
//
// Algorithm:
//   - Each split entry moves Owed from the payee's net balance to the payer's
//   - Each advance credits the sender and debits the receiver
//   - share = round(total expenses / members, 2)
//   - pending = round(paid + advances sent - advances received - share, 2)
//   - OwesTo for debtors is the member with the largest positive net balance,
//     ties going to the earlier member
//
// The sum of the returned net balances is zero up to rounding. OwesTo can disagree with
// the suggestions from Suggest when more than two members are out of balance.
func Aggregate(splits []SplitEntry, advances []Advance, members []string, totalPaid map[string]decimal.Decimal) (map[string]decimal.Decimal, []MemberBalance, error) {
	index, err := memberIndex(members)
	if err != nil {
		return nil, nil, err
	}

	net := make(map[string]decimal.Decimal, len(members))
	advancePaid := make(map[string]decimal.Decimal, len(members))
	advanceReceived := make(map[string]decimal.Decimal, len(members))
	for _, m := range members {
		net[m] = decimal.Zero
		advancePaid[m] = decimal.Zero
		advanceReceived[m] = decimal.Zero
	}

	var skippedErrs []error
	for i, s := range splits {
		ref := recordRef("split", "", i)
		if _, ok := index[s.Payer]; !ok {
			skippedErrs = append(skippedErrs, &InvalidPayerError{Record: ref, Member: s.Payer})
			continue
		}
		if _, ok := index[s.Payee]; !ok {
			skippedErrs = append(skippedErrs, &InvalidPayerError{Record: ref, Member: s.Payee})
			continue
		}
		net[s.Payee] = net[s.Payee].Sub(s.Owed)
		net[s.Payer] = net[s.Payer].Add(s.Owed)
	}

	for i, adv := range advances {
		ref := recordRef("advance", adv.ID, i)
		if _, ok := index[adv.From]; !ok {
			skippedErrs = append(skippedErrs, &InvalidPayerError{Record: ref, Member: adv.From})
			continue
		}
		if _, ok := index[adv.To]; !ok {
			skippedErrs = append(skippedErrs, &InvalidPayerError{Record: ref, Member: adv.To})
			continue
		}
		if !adv.Amount.IsPositive() {
			skippedErrs = append(skippedErrs, &MalformedAmountError{Record: ref, Amount: adv.Amount})
			continue
		}
		net[adv.From] = net[adv.From].Add(adv.Amount)
		net[adv.To] = net[adv.To].Sub(adv.Amount)
		advancePaid[adv.From] = advancePaid[adv.From].Add(adv.Amount)
		advanceReceived[adv.To] = advanceReceived[adv.To].Add(adv.Amount)
	}

	totalExpense := decimal.Zero
	for _, m := range members {
		totalExpense = totalExpense.Add(totalPaid[m])
	}
	share := ShareOf(totalExpense, len(members))

	creditor := largestCreditor(members, net)

	summaries := make([]MemberBalance, 0, len(members))
	for _, m := range members {
		paid := totalPaid[m]
		pending := paid.Add(advancePaid[m]).Sub(advanceReceived[m]).Sub(share).Round(2)
		bal := MemberBalance{
			Member:          m,
			TotalPaid:       paid,
			AdvancePaid:     advancePaid[m],
			AdvanceReceived: advanceReceived[m],
			ShareOwed:       share,
			Pending:         pending,
			NetBalance:      net[m],
		}
		if pending.IsNegative() && creditor != m {
			bal.OwesTo = creditor
		}
		summaries = append(summaries, bal)
	}

	return net, summaries, skipped(skippedErrs)
}

// Pending extracts the pending figure per member from Aggregate's summaries.
func Pending(summaries []MemberBalance) map[string]decimal.Decimal {
	pending := make(map[string]decimal.Decimal, len(summaries))
	for _, s := range summaries {
		pending[s.Member] = s.Pending
	}
	return pending
}

// largestCreditor returns the first member with the maximum positive net balance, or "".
func largestCreditor(members []string, net map[string]decimal.Decimal) string {
	best := ""
	bestAmount := decimal.Zero
	for _, m := range members {
		if net[m].GreaterThan(bestAmount) {
			best = m
			bestAmount = net[m]
		}
	}
	return best
}
