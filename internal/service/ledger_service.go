package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitconsole/internal/calculator"
	"github.com/mmynk/splitconsole/internal/metrics"
	"github.com/mmynk/splitconsole/internal/middleware"
	"github.com/mmynk/splitconsole/internal/models"
	"github.com/mmynk/splitconsole/internal/report"
	"github.com/mmynk/splitconsole/internal/storage"
	"github.com/mmynk/splitconsole/pkg/api"
	"github.com/mmynk/splitconsole/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService.
type LedgerService struct {
	apiconnect.UnimplementedLedgerServiceHandler
	store   storage.Store
	group   models.Group
	loc     *time.Location
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewLedgerService creates a LedgerService for group backed by store.
// Timestamps without a zone are read and displayed in loc. m may be nil.
func NewLedgerService(store storage.Store, group models.Group, loc *time.Location, m *metrics.Metrics) *LedgerService {
	if loc == nil {
		loc = time.UTC
	}
	return &LedgerService{
		store:   store,
		group:   group,
		loc:     loc,
		metrics: m,
		now:     time.Now,
	}
}

// caller returns the authenticated member, which must belong to the group.
func (s *LedgerService) caller(ctx context.Context) (string, error) {
	member := middleware.GetMember(ctx)
	if member == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errors.New("not authenticated"))
	}
	if !s.group.Has(member) {
		return "", connect.NewError(connect.CodePermissionDenied, fmt.Errorf("%q is not a group member", member))
	}
	return member, nil
}

// AddExpense records an expense paid by the caller, or by another member when payer is set.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	member, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	payer := req.Msg.Payer
	if payer == "" {
		payer = member
	}
	if !s.group.Has(payer) {
		err := &calculator.InvalidPayerError{Record: "expense", Member: payer}
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	amount, err := parseAmount("expense", req.Msg.Amount)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	ts, err := parseTimestamp(req.Msg.Timestamp, s.loc, s.now())
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	expense := &models.Expense{
		Amount:      amount,
		Payer:       payer,
		Category:    req.Msg.Category,
		SubCategory: req.Msg.SubCategory,
		Description: req.Msg.Description,
		Timestamp:   ts,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("Failed to save expense", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Expense added",
		"expense_id", expense.ID,
		"payer", payer,
		"amount", formatAmount(amount),
		"added_by", member,
	)
	return connect.NewResponse(&api.AddExpenseResponse{Expense: s.toAPIExpense(expense)}), nil
}

// ListExpenses returns expenses in ledger order, optionally filtered by category and date.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}

	filter, err := expenseFilter(req.Msg.Categories, req.Msg.From, req.Msg.To, s.loc)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	expenses, err := s.store.ListExpenses(ctx, filter)
	if err != nil {
		slog.Error("Failed to list expenses", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = s.toAPIExpense(e)
	}
	return connect.NewResponse(&api.ListExpensesResponse{
		Expenses: out,
		Total:    formatAmount(report.Total(expenses)),
	}), nil
}

// RecordAdvance records a direct payment from the caller to another member.
func (s *LedgerService) RecordAdvance(ctx context.Context, req *connect.Request[api.RecordAdvanceRequest]) (*connect.Response[api.RecordAdvanceResponse], error) {
	member, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	if !s.group.Has(req.Msg.To) {
		err := &calculator.InvalidPayerError{Record: "advance", Member: req.Msg.To}
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if req.Msg.To == member {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("cannot record an advance to yourself"))
	}

	amount, err := parseAmount("advance", req.Msg.Amount)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if !amount.IsPositive() {
		return nil, connect.NewError(connect.CodeInvalidArgument, &calculator.MalformedAmountError{Record: "advance", Amount: amount})
	}

	ts, err := parseTimestamp(req.Msg.Timestamp, s.loc, s.now())
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	advance := &models.AdvancePayment{
		From:      member,
		To:        req.Msg.To,
		Amount:    amount,
		Note:      req.Msg.Note,
		Timestamp: ts,
	}
	if err := s.store.CreateAdvance(ctx, advance); err != nil {
		slog.Error("Failed to save advance", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Advance recorded", "advance_id", advance.ID, "from", member, "to", advance.To, "amount", formatAmount(amount))
	return connect.NewResponse(&api.RecordAdvanceResponse{Advance: s.toAPIAdvance(advance)}), nil
}

// ListAdvances returns all advance payments in ledger order.
func (s *LedgerService) ListAdvances(ctx context.Context, req *connect.Request[api.ListAdvancesRequest]) (*connect.Response[api.ListAdvancesResponse], error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}

	advances, err := s.store.ListAdvances(ctx)
	if err != nil {
		slog.Error("Failed to list advances", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*api.Advance, len(advances))
	for i, a := range advances {
		out[i] = s.toAPIAdvance(a)
	}
	return connect.NewResponse(&api.ListAdvancesResponse{Advances: out}), nil
}

// compute runs the settlement engine over a consistent snapshot of the ledger.
func (s *LedgerService) compute(ctx context.Context) (*calculator.Result, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		slog.Error("Failed to read ledger", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	res, err := calculator.Compute(calculatorInput(s.group.Members, snap))
	if err != nil {
		slog.Error("Settlement computation failed", "error", err)
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}

	for _, skippedErr := range res.Skipped {
		slog.Warn("Skipped ledger record", "error", skippedErr)
	}
	if s.metrics != nil {
		s.metrics.Computations.Inc()
		s.metrics.Suggestions.Observe(float64(len(res.Suggestions)))
		for _, skippedErr := range res.Skipped {
			s.metrics.SkippedRecords.WithLabelValues(skipReason(skippedErr)).Inc()
		}
	}
	return res, nil
}

func skipReason(err error) string {
	var payerErr *calculator.InvalidPayerError
	var amountErr *calculator.MalformedAmountError
	switch {
	case errors.As(err, &payerErr):
		return "invalid_member"
	case errors.As(err, &amountErr):
		return "malformed_amount"
	}
	return "other"
}

// GetBalances returns the balance table, settlement suggestions and the caller's
// outstanding split entries.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	member, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	resp := &api.GetBalancesResponse{
		Balances:        make([]*api.MemberBalance, len(res.Balances)),
		Suggestions:     make([]*api.Suggestion, len(res.Suggestions)),
		OutstandingDues: []*api.SplitEntry{},
		FullySettled:    res.FullySettled,
	}
	for i, b := range res.Balances {
		resp.Balances[i] = toAPIBalance(b)
	}
	for i, sg := range res.Suggestions {
		resp.Suggestions[i] = toAPISuggestion(sg)
	}
	for _, due := range calculator.OutstandingDues(res.Splits, member, "") {
		resp.OutstandingDues = append(resp.OutstandingDues, s.toAPISplitEntry(due))
	}
	for _, skippedErr := range res.Skipped {
		resp.Warnings = append(resp.Warnings, skippedErr.Error())
	}

	slog.Debug("Balances computed",
		"member", member,
		"suggestions", len(res.Suggestions),
		"fully_settled", res.FullySettled,
		"skipped", len(res.Skipped),
	)
	return connect.NewResponse(resp), nil
}

// MarkSettled records every outstanding split entry a member owes as settled,
// optionally only those owed to one payer.
// The caller may settle their own dues, or confirm dues owed to them as the payer.
func (s *LedgerService) MarkSettled(ctx context.Context, req *connect.Request[api.MarkSettledRequest]) (*connect.Response[api.MarkSettledResponse], error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	member := req.Msg.Member
	if member == "" {
		member = caller
	}
	if !s.group.Has(member) {
		return nil, connect.NewError(connect.CodeInvalidArgument, &calculator.InvalidPayerError{Record: "settlement", Member: member})
	}
	if req.Msg.Payer != "" && !s.group.Has(req.Msg.Payer) {
		return nil, connect.NewError(connect.CodeInvalidArgument, &calculator.InvalidPayerError{Record: "settlement", Member: req.Msg.Payer})
	}
	if caller != member && caller != req.Msg.Payer {
		return nil, connect.NewError(connect.CodePermissionDenied,
			fmt.Errorf("%s cannot settle dues of %s", caller, member))
	}

	res, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	dues := calculator.OutstandingDues(res.Splits, member, req.Msg.Payer)
	records := make([]*models.SettledRecord, len(dues))
	for i, due := range dues {
		records[i] = &models.SettledRecord{
			Payer:       due.Payer,
			Payee:       due.Payee,
			Owed:        due.Owed,
			Description: due.Description,
			Timestamp:   due.Timestamp,
			SettledBy:   caller,
		}
	}

	added, err := s.store.CreateSettledRecords(ctx, records)
	if err != nil {
		slog.Error("Failed to save settled records", "member", member, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if s.metrics != nil {
		s.metrics.SettledEntries.Add(float64(added))
	}

	slog.Info("Dues marked settled", "member", member, "payer", req.Msg.Payer, "settled", added, "settled_by", caller)
	return connect.NewResponse(&api.MarkSettledResponse{Settled: int32(added)}), nil
}

// GetSummary totals expenses by category and by day.
func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}

	filter, err := expenseFilter(req.Msg.Categories, req.Msg.From, req.Msg.To, s.loc)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	expenses, err := s.store.ListExpenses(ctx, filter)
	if err != nil {
		slog.Error("Failed to list expenses", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.GetSummaryResponse{Total: formatAmount(report.Total(expenses))}
	for _, c := range report.ByCategory(expenses) {
		resp.ByCategory = append(resp.ByCategory, &api.CategoryTotal{
			Category: c.Category,
			Total:    formatAmount(c.Total),
			Count:    int32(c.Count),
		})
	}
	for _, d := range report.ByDate(expenses, s.loc) {
		resp.ByDate = append(resp.ByDate, &api.DateTotal{Date: d.Date, Total: formatAmount(d.Total)})
	}
	return connect.NewResponse(resp), nil
}
