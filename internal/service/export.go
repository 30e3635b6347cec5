package service

import (
	"log/slog"
	"net/http"

	"github.com/mmynk/splitconsole/internal/middleware"
	"github.com/mmynk/splitconsole/internal/report"
)

// ExportCSV serves the filtered expense list as a CSV download.
// Query parameters: category (repeatable), from and to (YYYY-MM-DD).
func (s *LedgerService) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if !s.group.Has(middleware.GetMember(r.Context())) {
		http.Error(w, "not a group member", http.StatusForbidden)
		return
	}

	q := r.URL.Query()
	filter, err := expenseFilter(q["category"], q.Get("from"), q.Get("to"), s.loc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	expenses, err := s.store.ListExpenses(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list expenses for export", "error", err)
		http.Error(w, "failed to list expenses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
	if err := report.WriteCSV(w, expenses, s.loc); err != nil {
		slog.Error("Failed to write CSV export", "error", err)
	}
}
