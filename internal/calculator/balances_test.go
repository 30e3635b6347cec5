package calculator

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// randomExpenses builds a reproducible expense list with cent amounts.
func randomExpenses(n int, members []string) []Expense {
	r := rand.New(rand.NewSource(42))
	expenses := make([]Expense, n)
	for i := range expenses {
		expenses[i] = Expense{
			Amount:    decimal.New(int64(r.Intn(100000)), -2),
			Payer:     members[r.Intn(len(members))],
			Timestamp: t0.Add(time.Duration(i) * time.Minute),
		}
	}
	return expenses
}

func randomAdvances(n int, members []string) []Advance {
	r := rand.New(rand.NewSource(7))
	advances := make([]Advance, 0, n)
	for len(advances) < n {
		from, to := members[r.Intn(len(members))], members[r.Intn(len(members))]
		if from == to {
			continue
		}
		advances = append(advances, Advance{
			From:   from,
			To:     to,
			Amount: decimal.New(int64(1+r.Intn(5000)), -2),
		})
	}
	return advances
}

func sum(values map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func TestAggregate_SinglePayer(t *testing.T) {
	expenses := []Expense{{Amount: d("300"), Payer: "Alice", Timestamp: t0}}
	splits, err := ComputeSplits(expenses, group, nil)
	if err != nil {
		t.Fatalf("ComputeSplits failed: %v", err)
	}

	net, balances, err := Aggregate(splits, nil, group, TotalPaid(expenses, group))
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	want := map[string]string{"Alice": "200", "Bob": "-100", "Charlie": "-100"}
	for _, b := range balances {
		if !b.Pending.Equal(d(want[b.Member])) {
			t.Errorf("%s pending = %s, want %s", b.Member, b.Pending, want[b.Member])
		}
		if !net[b.Member].Equal(d(want[b.Member])) {
			t.Errorf("%s net = %s, want %s", b.Member, net[b.Member], want[b.Member])
		}
		if !b.ShareOwed.Equal(d("100")) {
			t.Errorf("%s share = %s, want 100", b.Member, b.ShareOwed)
		}
	}

	if balances[0].OwesTo != "" {
		t.Errorf("creditor should have no OwesTo hint, got %q", balances[0].OwesTo)
	}
	for _, b := range balances[1:] {
		if b.OwesTo != "Alice" {
			t.Errorf("%s OwesTo = %q, want Alice", b.Member, b.OwesTo)
		}
	}
}

func TestAggregate_Advance(t *testing.T) {
	expenses := []Expense{{Amount: d("300"), Payer: "Alice", Timestamp: t0}}
	advances := []Advance{{From: "Bob", To: "Alice", Amount: d("50")}}
	splits, _ := ComputeSplits(expenses, group, nil)

	net, balances, err := Aggregate(splits, advances, group, TotalPaid(expenses, group))
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	wantPending := map[string]string{"Alice": "150", "Bob": "-50", "Charlie": "-100"}
	for _, b := range balances {
		if !b.Pending.Equal(d(wantPending[b.Member])) {
			t.Errorf("%s pending = %s, want %s", b.Member, b.Pending, wantPending[b.Member])
		}
	}
	if !balances[0].TotalPaid.Equal(d("300")) {
		t.Errorf("advance must not change total paid, got %s", balances[0].TotalPaid)
	}
	if !balances[1].AdvancePaid.Equal(d("50")) || !balances[0].AdvanceReceived.Equal(d("50")) {
		t.Errorf("advance not accumulated: %+v / %+v", balances[1], balances[0])
	}
	if !net["Bob"].Equal(d("-50")) || !net["Alice"].Equal(d("150")) {
		t.Errorf("net balances = %v", net)
	}
}

func TestAggregate_OwesToTieBreak(t *testing.T) {
	members := []string{"Alice", "Bob", "Charlie", "Diana"}
	expenses := []Expense{
		{Amount: d("100"), Payer: "Bob", Timestamp: t0},
		{Amount: d("100"), Payer: "Charlie", Timestamp: t0.Add(time.Hour)},
	}
	splits, _ := ComputeSplits(expenses, members, nil)

	_, balances, err := Aggregate(splits, nil, members, TotalPaid(expenses, members))
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	for _, b := range balances {
		if b.Pending.IsNegative() && b.OwesTo != "Bob" {
			t.Errorf("%s OwesTo = %q, want Bob (first of tied creditors)", b.Member, b.OwesTo)
		}
	}
}

func TestAggregate_InvalidAdvances(t *testing.T) {
	advances := []Advance{
		{ID: "a1", From: "Mallory", To: "Alice", Amount: d("10")},
		{ID: "a2", From: "Alice", To: "Bob", Amount: d("0")},
		{ID: "a3", From: "Alice", To: "Bob", Amount: d("10")},
	}
	net, _, err := Aggregate(nil, advances, group, TotalPaid(nil, group))

	var skippedErr *SkippedRecordsError
	if !errors.As(err, &skippedErr) {
		t.Fatalf("expected SkippedRecordsError, got %v", err)
	}
	if len(skippedErr.Errs) != 2 {
		t.Errorf("expected 2 skipped advances, got %d", len(skippedErr.Errs))
	}
	var payerErr *InvalidPayerError
	if !errors.As(err, &payerErr) || payerErr.Member != "Mallory" {
		t.Errorf("expected InvalidPayerError for Mallory, got %v", err)
	}
	var amountErr *MalformedAmountError
	if !errors.As(err, &amountErr) {
		t.Errorf("expected MalformedAmountError, got %v", err)
	}
	if !net["Alice"].Equal(d("10")) || !net["Bob"].Equal(d("-10")) {
		t.Errorf("valid advance not applied: %v", net)
	}
	if got := Warnings(err); len(got) != 2 {
		t.Errorf("Warnings() = %v", got)
	}
}

func TestAggregate_Conservation(t *testing.T) {
	for _, members := range [][]string{
		{"Alice", "Bob"},
		group,
		{"Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace"},
	} {
		expenses := randomExpenses(200, members)
		advances := randomAdvances(30, members)
		splits, err := ComputeSplits(expenses, members, nil)
		if err != nil {
			t.Fatalf("ComputeSplits failed: %v", err)
		}
		net, balances, err := Aggregate(splits, advances, members, TotalPaid(expenses, members))
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}

		tolerance := decimal.New(int64(len(members)), -2)
		if s := sum(net); s.Abs().GreaterThan(tolerance) {
			t.Errorf("%d members: net balances sum to %s", len(members), s)
		}
		if s := sum(Pending(balances)); s.Abs().GreaterThan(tolerance) {
			t.Errorf("%d members: pending sums to %s", len(members), s)
		}
	}
}

func TestAggregate_EmptyGroup(t *testing.T) {
	if _, _, err := Aggregate(nil, nil, nil, nil); !errors.Is(err, ErrEmptyGroup) {
		t.Errorf("expected ErrEmptyGroup, got %v", err)
	}
}

func TestTotalPaid(t *testing.T) {
	expenses := []Expense{
		{Amount: d("10.50"), Payer: "Alice"},
		{Amount: d("4.50"), Payer: "Alice"},
		{Amount: d("7"), Payer: "Mallory"},
		{Amount: d("-3"), Payer: "Bob"},
	}
	totals := TotalPaid(expenses, group)
	if !totals["Alice"].Equal(d("15")) {
		t.Errorf("Alice total = %s, want 15", totals["Alice"])
	}
	if !totals["Bob"].IsZero() || !totals["Charlie"].IsZero() {
		t.Errorf("unexpected totals: %v", totals)
	}
	if _, ok := totals["Mallory"]; ok {
		t.Error("non-member should not get a total")
	}
}
