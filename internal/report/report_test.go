package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitconsole/internal/models"
)

func expense(amount, category string, ts time.Time) *models.Expense {
	return &models.Expense{
		ID:        category + ts.Format(time.RFC3339),
		Amount:    decimal.RequireFromString(amount),
		Payer:     "Alice",
		Category:  category,
		Timestamp: ts,
	}
}

func TestByCategory(t *testing.T) {
	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	expenses := []*models.Expense{
		expense("20", "Food", base),
		expense("150", "Travel", base),
		expense("35.50", "Food", base),
		expense("5", "", base),
		expense("55.50", "Office", base),
	}

	got := ByCategory(expenses)
	want := []struct {
		category string
		total    string
		count    int
	}{
		{"Travel", "150", 1},
		{"Food", "55.5", 2},
		{"Office", "55.5", 1},
		{Uncategorized, "5", 1},
	}
	if len(got) != len(want) {
		t.Fatalf("ByCategory() returned %d rows, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Category != w.category || !got[i].Total.Equal(decimal.RequireFromString(w.total)) || got[i].Count != w.count {
			t.Errorf("row %d = %+v, want %+v", i, got[i], w)
		}
	}

	if !Total(expenses).Equal(decimal.RequireFromString("266")) {
		t.Errorf("Total() = %s, want 266", Total(expenses))
	}
}

func TestByDate(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}

	expenses := []*models.Expense{
		// 20:00 UTC on Jan 10 is already Jan 11 in IST.
		expense("10", "Food", time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)),
		expense("5", "Food", time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)),
		expense("7", "Food", time.Date(2025, 1, 11, 8, 0, 0, 0, time.UTC)),
	}

	got := ByDate(expenses, ist)
	if len(got) != 2 {
		t.Fatalf("ByDate() returned %d rows, want 2", len(got))
	}
	if got[0].Date != "2025-01-10" || !got[0].Total.Equal(decimal.NewFromInt(5)) {
		t.Errorf("first day = %+v", got[0])
	}
	if got[1].Date != "2025-01-11" || !got[1].Total.Equal(decimal.NewFromInt(17)) {
		t.Errorf("second day = %+v", got[1])
	}
}

func TestWriteCSV(t *testing.T) {
	e := expense("12.5", "Office", time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC))
	e.SubCategory = "Supplies"
	e.Description = "Pens, paper"

	var b strings.Builder
	if err := WriteCSV(&b, []*models.Expense{e}, time.UTC); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := "DateTime,Amount,Payer,Category,SubCategory,Description\n" +
		"2025-02-03 04:05:06,12.50,Alice,Office,Supplies,\"Pens, paper\"\n"
	if b.String() != want {
		t.Errorf("WriteCSV() =\n%s\nwant\n%s", b.String(), want)
	}
}
