// Package api defines the request and response messages of the Split Console RPC API.
//
// Amounts are decimal strings ("120.50"). Timestamps are "2006-01-02 15:04:05" in the
// server's configured time zone; RFC 3339 is also accepted on input. Dates used as
// filters are "2006-01-02".
package api

// Expense is one ledger expense.
type Expense struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Payer       string `json:"payer"`
	Category    string `json:"category,omitempty"`
	SubCategory string `json:"subcategory,omitempty"`
	Description string `json:"description,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// Advance is a direct payment between two members.
type Advance struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Note      string `json:"note,omitempty"`
	Timestamp string `json:"timestamp"`
}

// SplitEntry is one outstanding share: Payee owes Payer.
type SplitEntry struct {
	Payer       string `json:"payer"`
	Payee       string `json:"payee"`
	Owed        string `json:"owed"`
	Description string `json:"description,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// MemberBalance is one row of the balance table.
type MemberBalance struct {
	Member          string `json:"member"`
	TotalPaid       string `json:"total_paid"`
	AdvancePaid     string `json:"advance_paid"`
	AdvanceReceived string `json:"advance_received"`
	ShareOwed       string `json:"share_owed"`
	Pending         string `json:"pending"`
	NetBalance      string `json:"net_balance"`
	OwesTo          string `json:"owes_to,omitempty"`
}

// Suggestion is a recommended transfer from Debtor to Creditor.
type Suggestion struct {
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
	Amount   string `json:"amount"`
}

// CategoryTotal is the sum of expenses in one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    string `json:"total"`
	Count    int32  `json:"count"`
}

// DateTotal is the sum of expenses on one calendar day.
type DateTotal struct {
	Date  string `json:"date"`
	Total string `json:"total"`
}

type AddExpenseRequest struct {
	Amount      string `json:"amount"`
	Payer       string `json:"payer,omitempty"` // defaults to the caller
	Category    string `json:"category,omitempty"`
	SubCategory string `json:"subcategory,omitempty"`
	Description string `json:"description,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"` // defaults to now
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	Categories []string `json:"categories,omitempty"`
	From       string   `json:"from,omitempty"`
	To         string   `json:"to,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
	Total    string     `json:"total"`
}

type RecordAdvanceRequest struct {
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Note      string `json:"note,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

type RecordAdvanceResponse struct {
	Advance *Advance `json:"advance"`
}

type ListAdvancesRequest struct{}

type ListAdvancesResponse struct {
	Advances []*Advance `json:"advances"`
}

type GetBalancesRequest struct{}

type GetBalancesResponse struct {
	Balances        []*MemberBalance `json:"balances"`
	Suggestions     []*Suggestion    `json:"suggestions"`
	OutstandingDues []*SplitEntry    `json:"outstanding_dues"`
	FullySettled    bool             `json:"fully_settled"`
	Warnings        []string         `json:"warnings,omitempty"`
}

type MarkSettledRequest struct {
	Member string `json:"member,omitempty"` // whose dues; defaults to the caller
	Payer  string `json:"payer,omitempty"`  // only dues owed to this member
}

type MarkSettledResponse struct {
	Settled int32 `json:"settled"`
}

type GetSummaryRequest struct {
	Categories []string `json:"categories,omitempty"`
	From       string   `json:"from,omitempty"`
	To         string   `json:"to,omitempty"`
}

type GetSummaryResponse struct {
	ByCategory []*CategoryTotal `json:"by_category"`
	ByDate     []*DateTotal     `json:"by_date"`
	Total      string           `json:"total"`
}

type RegisterRequest struct {
	Member   string `json:"member"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Member string `json:"member"`
	Token  string `json:"token"`
}

type LoginRequest struct {
	Member   string `json:"member"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Member string `json:"member"`
	Token  string `json:"token"`
}
