// Package models defines the persisted records of the Split Console ledger.
//
// # Records
//
// The ledger holds three append-only record sets:
//   - Expense: an amount paid by one member on behalf of the whole group
//   - AdvancePayment: a direct transfer between two members, independent of expenses
//   - SettledRecord: a split entry a member has marked as paid
//
// Members are identified by name. The member list itself is configuration (see Group),
// not data: records only reference it.
//
// # Derived data
//
// Split entries, balances and settlement suggestions are recomputed from these records
// on every request by the calculator package. Nothing derived is stored except
// SettledRecords, which exist to keep a paid-down split entry from being suggested again.
package models
