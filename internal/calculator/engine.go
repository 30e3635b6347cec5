package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Input is one consistent snapshot of the ledger.
type Input struct {
	Members  []string // Fixed group, order matters for suggestions
	Expenses []Expense
	Advances []Advance
	Settled  []SplitEntry
}

// Result holds everything derived from one Input.
type Result struct {
	Splits       []SplitEntry
	NetBalances  map[string]decimal.Decimal
	Balances     []MemberBalance
	Suggestions  []Suggestion
	FullySettled bool

	// Skipped lists records left out of the computation; nil when everything was used.
	Skipped []error
}

// Compute runs split, aggregation and suggestion over the snapshot.
// Invalid records are skipped and listed in Result.Skipped; only a bad member list
// fails the whole computation.
func Compute(in Input) (*Result, error) {
	if err := ValidateMembers(in.Members); err != nil {
		return nil, err
	}

	res := &Result{}

	splits, err := ComputeSplits(in.Expenses, in.Members, in.Settled)
	if err := collect(res, err); err != nil {
		return nil, err
	}
	res.Splits = splits

	totals := TotalPaid(in.Expenses, in.Members)
	net, balances, err := Aggregate(splits, in.Advances, in.Members, totals)
	if err := collect(res, err); err != nil {
		return nil, err
	}
	res.NetBalances = net
	res.Balances = balances

	pending := Pending(balances)
	res.FullySettled = FullySettled(pending)
	res.Suggestions, err = Suggest(in.Members, pending)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// collect moves skipped-record errors into res and returns any other error.
func collect(res *Result, err error) error {
	if err == nil {
		return nil
	}
	var skippedErr *SkippedRecordsError
	if errors.As(err, &skippedErr) {
		res.Skipped = append(res.Skipped, skippedErr.Errs...)
		return nil
	}
	return err
}
