// Package report aggregates expenses for summaries and exports.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitconsole/internal/models"
)

// Uncategorized labels expenses entered without a category.
const Uncategorized = "Uncategorized"

// TimestampLayout is how expense timestamps are displayed and exported.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the calendar-day layout used for date totals and filters.
const DateLayout = "2006-01-02"

// CategoryTotal is the sum of expenses in one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// DateTotal is the sum of expenses on one calendar day.
type DateTotal struct {
	Date  string
	Total decimal.Decimal
}

// Total sums all expense amounts.
func Total(expenses []*models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ByCategory totals expenses per category, largest first.
func ByCategory(expenses []*models.Expense) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal
	for _, e := range expenses {
		category := e.Category
		if category == "" {
			category = Uncategorized
		}
		i, ok := index[category]
		if !ok {
			i = len(totals)
			index[category] = i
			totals = append(totals, CategoryTotal{Category: category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
		totals[i].Count++
	}

	sort.SliceStable(totals, func(a, b int) bool {
		if !totals[a].Total.Equal(totals[b].Total) {
			return totals[a].Total.GreaterThan(totals[b].Total)
		}
		return totals[a].Category < totals[b].Category
	})
	return totals
}

// ByDate totals expenses per calendar day in loc, oldest first.
func ByDate(expenses []*models.Expense, loc *time.Location) []DateTotal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		day := e.Timestamp.In(loc).Format(DateLayout)
		sums[day] = sums[day].Add(e.Amount)
	}

	totals := make([]DateTotal, 0, len(sums))
	for day, total := range sums {
		totals = append(totals, DateTotal{Date: day, Total: total})
	}
	// DateLayout sorts lexically in date order.
	sort.Slice(totals, func(a, b int) bool { return totals[a].Date < totals[b].Date })
	return totals
}

// WriteCSV writes expenses as CSV with timestamps rendered in loc.
func WriteCSV(w io.Writer, expenses []*models.Expense, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"DateTime", "Amount", "Payer", "Category", "SubCategory", "Description"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range expenses {
		record := []string{
			e.Timestamp.In(loc).Format(TimestampLayout),
			e.Amount.StringFixed(2),
			e.Payer,
			e.Category,
			e.SubCategory,
			e.Description,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write expense %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
