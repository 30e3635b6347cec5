package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyGroup is returned when a computation is requested with no configured members.
var ErrEmptyGroup = errors.New("group has no members")

// InvalidPayerError reports a record that references someone outside the group.
type InvalidPayerError struct {
	Record string // human-readable record reference, e.g. "expense 3"
	Member string
}

func (e *InvalidPayerError) Error() string {
	return fmt.Sprintf("%s: %q is not a group member", e.Record, e.Member)
}

// MalformedAmountError reports a negative or otherwise unusable amount.
type MalformedAmountError struct {
	Record string
	Amount decimal.Decimal
}

func (e *MalformedAmountError) Error() string {
	return fmt.Sprintf("%s: malformed amount %s", e.Record, e.Amount.String())
}

// SkippedRecordsError collects the records that were left out of a computation.
// The computation result is still valid for the remaining records.
type SkippedRecordsError struct {
	Errs []error
}

func (e *SkippedRecordsError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("skipped %d record(s): %s", len(e.Errs), strings.Join(msgs, "; "))
}

func (e *SkippedRecordsError) Unwrap() []error {
	return e.Errs
}

// skipped returns nil when nothing was skipped so callers can return it directly.
func skipped(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &SkippedRecordsError{Errs: errs}
}

// Warnings flattens a SkippedRecordsError into its individual messages.
// Any other error is returned as a single message.
func Warnings(err error) []string {
	if err == nil {
		return nil
	}
	var skippedErr *SkippedRecordsError
	if !errors.As(err, &skippedErr) {
		return []string{err.Error()}
	}
	out := make([]string, len(skippedErr.Errs))
	for i, e := range skippedErr.Errs {
		out[i] = e.Error()
	}
	return out
}
