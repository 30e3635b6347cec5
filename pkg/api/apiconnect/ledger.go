package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitconsole/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService.
const LedgerServiceName = "splitconsole.v1.LedgerService"

// Procedure paths of the LedgerService.
const (
	LedgerServiceAddExpenseProcedure    = "/splitconsole.v1.LedgerService/AddExpense"
	LedgerServiceListExpensesProcedure  = "/splitconsole.v1.LedgerService/ListExpenses"
	LedgerServiceRecordAdvanceProcedure = "/splitconsole.v1.LedgerService/RecordAdvance"
	LedgerServiceListAdvancesProcedure  = "/splitconsole.v1.LedgerService/ListAdvances"
	LedgerServiceGetBalancesProcedure   = "/splitconsole.v1.LedgerService/GetBalances"
	LedgerServiceMarkSettledProcedure   = "/splitconsole.v1.LedgerService/MarkSettled"
	LedgerServiceGetSummaryProcedure    = "/splitconsole.v1.LedgerService/GetSummary"
)

// LedgerServiceHandler is implemented by the ledger service.
type LedgerServiceHandler interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	RecordAdvance(context.Context, *connect.Request[api.RecordAdvanceRequest]) (*connect.Response[api.RecordAdvanceResponse], error)
	ListAdvances(context.Context, *connect.Request[api.ListAdvancesRequest]) (*connect.Response[api.ListAdvancesResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	MarkSettled(context.Context, *connect.Request[api.MarkSettledRequest]) (*connect.Response[api.MarkSettledResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(LedgerServiceAddExpenseProcedure, connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(LedgerServiceListExpensesProcedure, connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(LedgerServiceRecordAdvanceProcedure, connect.NewUnaryHandler(LedgerServiceRecordAdvanceProcedure, svc.RecordAdvance, opts...))
	mux.Handle(LedgerServiceListAdvancesProcedure, connect.NewUnaryHandler(LedgerServiceListAdvancesProcedure, svc.ListAdvances, opts...))
	mux.Handle(LedgerServiceGetBalancesProcedure, connect.NewUnaryHandler(LedgerServiceGetBalancesProcedure, svc.GetBalances, opts...))
	mux.Handle(LedgerServiceMarkSettledProcedure, connect.NewUnaryHandler(LedgerServiceMarkSettledProcedure, svc.MarkSettled, opts...))
	mux.Handle(LedgerServiceGetSummaryProcedure, connect.NewUnaryHandler(LedgerServiceGetSummaryProcedure, svc.GetSummary, opts...))

	return "/" + LedgerServiceName + "/", mux
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, unimplemented(LedgerServiceAddExpenseProcedure)
}

func (UnimplementedLedgerServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, unimplemented(LedgerServiceListExpensesProcedure)
}

func (UnimplementedLedgerServiceHandler) RecordAdvance(context.Context, *connect.Request[api.RecordAdvanceRequest]) (*connect.Response[api.RecordAdvanceResponse], error) {
	return nil, unimplemented(LedgerServiceRecordAdvanceProcedure)
}

func (UnimplementedLedgerServiceHandler) ListAdvances(context.Context, *connect.Request[api.ListAdvancesRequest]) (*connect.Response[api.ListAdvancesResponse], error) {
	return nil, unimplemented(LedgerServiceListAdvancesProcedure)
}

func (UnimplementedLedgerServiceHandler) GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return nil, unimplemented(LedgerServiceGetBalancesProcedure)
}

func (UnimplementedLedgerServiceHandler) MarkSettled(context.Context, *connect.Request[api.MarkSettledRequest]) (*connect.Response[api.MarkSettledResponse], error) {
	return nil, unimplemented(LedgerServiceMarkSettledProcedure)
}

func (UnimplementedLedgerServiceHandler) GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return nil, unimplemented(LedgerServiceGetSummaryProcedure)
}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(procedure+" is not implemented"))
}

// LedgerServiceClient calls a LedgerService.
type LedgerServiceClient interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	RecordAdvance(context.Context, *connect.Request[api.RecordAdvanceRequest]) (*connect.Response[api.RecordAdvanceResponse], error)
	ListAdvances(context.Context, *connect.Request[api.ListAdvancesRequest]) (*connect.Response[api.ListAdvancesResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	MarkSettled(context.Context, *connect.Request[api.MarkSettledRequest]) (*connect.Response[api.MarkSettledResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
}

// NewLedgerServiceClient constructs a client for the LedgerService at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &ledgerServiceClient{
		addExpense:    connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		listExpenses:  connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		recordAdvance: connect.NewClient[api.RecordAdvanceRequest, api.RecordAdvanceResponse](httpClient, baseURL+LedgerServiceRecordAdvanceProcedure, opts...),
		listAdvances:  connect.NewClient[api.ListAdvancesRequest, api.ListAdvancesResponse](httpClient, baseURL+LedgerServiceListAdvancesProcedure, opts...),
		getBalances:   connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+LedgerServiceGetBalancesProcedure, opts...),
		markSettled:   connect.NewClient[api.MarkSettledRequest, api.MarkSettledResponse](httpClient, baseURL+LedgerServiceMarkSettledProcedure, opts...),
		getSummary:    connect.NewClient[api.GetSummaryRequest, api.GetSummaryResponse](httpClient, baseURL+LedgerServiceGetSummaryProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	addExpense    *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	listExpenses  *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	recordAdvance *connect.Client[api.RecordAdvanceRequest, api.RecordAdvanceResponse]
	listAdvances  *connect.Client[api.ListAdvancesRequest, api.ListAdvancesResponse]
	getBalances   *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	markSettled   *connect.Client[api.MarkSettledRequest, api.MarkSettledResponse]
	getSummary    *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
}

func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RecordAdvance(ctx context.Context, req *connect.Request[api.RecordAdvanceRequest]) (*connect.Response[api.RecordAdvanceResponse], error) {
	return c.recordAdvance.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListAdvances(ctx context.Context, req *connect.Request[api.ListAdvancesRequest]) (*connect.Response[api.ListAdvancesResponse], error) {
	return c.listAdvances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) MarkSettled(ctx context.Context, req *connect.Request[api.MarkSettledRequest]) (*connect.Response[api.MarkSettledResponse], error) {
	return c.markSettled.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}
