package calculator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents an expense with the minimal information needed for splitting.
type Expense struct {
	ID          string
	Amount      decimal.Decimal
	Payer       string
	Description string
	Timestamp   time.Time
}

// SplitEntry records that Payee owes Payer their share of one expense.
type SplitEntry struct {
	Payer       string
	Payee       string
	Owed        decimal.Decimal
	Description string
	Timestamp   time.Time
}

// SettledKey identifies a split entry that has already been paid down.
type SettledKey struct {
	Payer string
	Payee string
	Unix  int64
}

// Key returns the settled-records key for the entry.
func (s SplitEntry) Key() SettledKey {
	return SettledKey{Payer: s.Payer, Payee: s.Payee, Unix: s.Timestamp.Unix()}
}

// ShareOf divides amount equally among n members, rounded to cents.
// The shares of one expense may not add back up to amount; that drift is accepted.
func ShareOf(amount decimal.Decimal, n int) decimal.Decimal {
	return amount.Div(decimal.NewFromInt(int64(n))).Round(2)
}

// ComputeSplits expands each expense into one SplitEntry per member other than the payer.
// Entries whose (payer, payee, timestamp) appear in settled are left out.
//
// Expenses with an unknown payer or a negative amount are skipped; the returned error is
// then a *SkippedRecordsError and the splits are still usable.
func ComputeSplits(expenses []Expense, members []string, settled []SplitEntry) ([]SplitEntry, error) {
	index, err := memberIndex(members)
	if err != nil {
		return nil, err
	}

	done := make(map[SettledKey]struct{}, len(settled))
	for _, s := range settled {
		done[s.Key()] = struct{}{}
	}

	var splits []SplitEntry
	var skippedErrs []error
	for i, exp := range expenses {
		ref := recordRef("expense", exp.ID, i)
		if _, ok := index[exp.Payer]; !ok {
			skippedErrs = append(skippedErrs, &InvalidPayerError{Record: ref, Member: exp.Payer})
			continue
		}
		if exp.Amount.IsNegative() {
			skippedErrs = append(skippedErrs, &MalformedAmountError{Record: ref, Amount: exp.Amount})
			continue
		}

		owed := ShareOf(exp.Amount, len(members))
		for _, member := range members {
			if member == exp.Payer {
				continue
			}
			entry := SplitEntry{
				Payer:       exp.Payer,
				Payee:       member,
				Owed:        owed,
				Description: exp.Description,
				Timestamp:   exp.Timestamp,
			}
			if _, ok := done[entry.Key()]; ok {
				continue
			}
			splits = append(splits, entry)
		}
	}

	return splits, skipped(skippedErrs)
}

// OutstandingDues returns the entries payee still owes, optionally only those owed to payer.
func OutstandingDues(splits []SplitEntry, payee, payer string) []SplitEntry {
	var dues []SplitEntry
	for _, s := range splits {
		if s.Payee != payee {
			continue
		}
		if payer != "" && s.Payer != payer {
			continue
		}
		dues = append(dues, s)
	}
	return dues
}

// ValidateMembers checks the group is non-empty, has no blank names and no duplicates.
func ValidateMembers(members []string) error {
	_, err := memberIndex(members)
	return err
}

func memberIndex(members []string) (map[string]int, error) {
	if len(members) == 0 {
		return nil, ErrEmptyGroup
	}
	index := make(map[string]int, len(members))
	for i, m := range members {
		if m == "" {
			return nil, fmt.Errorf("member %d has an empty name", i+1)
		}
		if _, dup := index[m]; dup {
			return nil, fmt.Errorf("duplicate member %q", m)
		}
		index[m] = i
	}
	return index, nil
}

func recordRef(kind, id string, i int) string {
	if id != "" {
		return fmt.Sprintf("%s %s", kind, id)
	}
	return fmt.Sprintf("%s #%d", kind, i+1)
}
