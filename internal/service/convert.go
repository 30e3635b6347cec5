package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitconsole/internal/calculator"
	"github.com/mmynk/splitconsole/internal/models"
	"github.com/mmynk/splitconsole/internal/report"
	"github.com/mmynk/splitconsole/internal/storage"
	"github.com/mmynk/splitconsole/pkg/api"
)

// timestampLayouts are tried in order when parsing client timestamps.
var timestampLayouts = []string{
	report.TimestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseAmount parses a non-negative amount and rounds it to cents.
func parseAmount(record, s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid amount %q", record, s)
	}
	if amount.IsNegative() {
		return decimal.Zero, &calculator.MalformedAmountError{Record: record, Amount: amount}
	}
	return amount.Round(2), nil
}

// parseTimestamp parses s in loc, falling back to now when s is empty.
// The result is truncated to whole seconds.
func parseTimestamp(s string, loc *time.Location, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.Truncate(time.Second), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Truncate(time.Second), nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, want %q", s, report.TimestampLayout)
}

// expenseFilter builds a storage filter from date strings in loc.
// Both bounds are inclusive whole days.
func expenseFilter(categories []string, from, to string, loc *time.Location) (models.ExpenseFilter, error) {
	filter := models.ExpenseFilter{Categories: categories}
	if from != "" {
		t, err := time.ParseInLocation(report.DateLayout, from, loc)
		if err != nil {
			return filter, fmt.Errorf("invalid from date %q, want %q", from, report.DateLayout)
		}
		filter.From = t
	}
	if to != "" {
		t, err := time.ParseInLocation(report.DateLayout, to, loc)
		if err != nil {
			return filter, fmt.Errorf("invalid to date %q, want %q", to, report.DateLayout)
		}
		filter.To = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return filter, fmt.Errorf("date range %s to %s is empty", from, to)
	}
	return filter, nil
}

// calculatorInput maps a storage snapshot onto the engine's input.
func calculatorInput(members []string, snap *storage.Snapshot) calculator.Input {
	in := calculator.Input{
		Members:  members,
		Expenses: make([]calculator.Expense, len(snap.Expenses)),
		Advances: make([]calculator.Advance, len(snap.Advances)),
		Settled:  make([]calculator.SplitEntry, len(snap.Settled)),
	}
	for i, e := range snap.Expenses {
		in.Expenses[i] = calculator.Expense{
			ID:          e.ID,
			Amount:      e.Amount,
			Payer:       e.Payer,
			Description: e.Description,
			Timestamp:   e.Timestamp,
		}
	}
	for i, a := range snap.Advances {
		in.Advances[i] = calculator.Advance{
			ID:        a.ID,
			From:      a.From,
			To:        a.To,
			Amount:    a.Amount,
			Timestamp: a.Timestamp,
		}
	}
	for i, s := range snap.Settled {
		in.Settled[i] = calculator.SplitEntry{
			Payer:       s.Payer,
			Payee:       s.Payee,
			Owed:        s.Owed,
			Description: s.Description,
			Timestamp:   s.Timestamp,
		}
	}
	return in
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (s *LedgerService) formatTime(t time.Time) string {
	return t.In(s.loc).Format(report.TimestampLayout)
}

func (s *LedgerService) toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:          e.ID,
		Amount:      formatAmount(e.Amount),
		Payer:       e.Payer,
		Category:    e.Category,
		SubCategory: e.SubCategory,
		Description: e.Description,
		Timestamp:   s.formatTime(e.Timestamp),
	}
}

func (s *LedgerService) toAPIAdvance(a *models.AdvancePayment) *api.Advance {
	return &api.Advance{
		ID:        a.ID,
		From:      a.From,
		To:        a.To,
		Amount:    formatAmount(a.Amount),
		Note:      a.Note,
		Timestamp: s.formatTime(a.Timestamp),
	}
}

func (s *LedgerService) toAPISplitEntry(e calculator.SplitEntry) *api.SplitEntry {
	return &api.SplitEntry{
		Payer:       e.Payer,
		Payee:       e.Payee,
		Owed:        formatAmount(e.Owed),
		Description: e.Description,
		Timestamp:   s.formatTime(e.Timestamp),
	}
}

func toAPIBalance(b calculator.MemberBalance) *api.MemberBalance {
	return &api.MemberBalance{
		Member:          b.Member,
		TotalPaid:       formatAmount(b.TotalPaid),
		AdvancePaid:     formatAmount(b.AdvancePaid),
		AdvanceReceived: formatAmount(b.AdvanceReceived),
		ShareOwed:       formatAmount(b.ShareOwed),
		Pending:         formatAmount(b.Pending),
		NetBalance:      formatAmount(b.NetBalance),
		OwesTo:          b.OwesTo,
	}
}

func toAPISuggestion(sg calculator.Suggestion) *api.Suggestion {
	return &api.Suggestion{
		Debtor:   sg.Debtor,
		Creditor: sg.Creditor,
		Amount:   formatAmount(sg.Amount),
	}
}
