package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"daily-diary/server/internal/model"
	"daily-diary/server/internal/store"

	"go.uber.org/zap"
)

type createExpenseRequest struct {
	// Amount stays untyped so a string or bool is reported as a bad amount
	// rather than as malformed JSON.
	Amount   any     `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Note     *string `json:"note"`
}

type deleteExpenseResponse struct {
	Message        string        `json:"message"`
	DeletedExpense model.Expense `json:"deletedExpense"`
}

// amountPresent mirrors a truthiness check: absent, null, zero, empty string
// and false all count as missing.
func amountPresent(v any) bool {
	switch a := v.(type) {
	case nil:
		return false
	case float64:
		return a != 0
	case string:
		return a != ""
	case bool:
		return a
	}
	return true
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	expenses, err := s.store.ListExpenses(r.Context(), identity(r).UserID, date)
	if err != nil {
		s.log.Error("list expenses", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}
	writeData(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	category := strings.TrimSpace(req.Category)
	if msg := missingFields(
		field{"amount", amountPresent(req.Amount)},
		field{"category", category != ""},
		field{"date", req.Date != ""},
	); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	amount, ok := req.Amount.(float64)
	if !ok || amount <= 0 {
		writeError(w, http.StatusBadRequest, "Amount must be a positive number")
		return
	}
	if !model.ValidDate(req.Date) {
		writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	expense, err := s.store.CreateExpense(r.Context(), model.Expense{
		UserID:   identity(r).UserID,
		Amount:   amount,
		Category: category,
		Date:     req.Date,
		Note:     optionalText(req.Note),
	})
	if err != nil {
		s.log.Error("create expense", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create expense")
		return
	}
	writeData(w, http.StatusCreated, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if !checkID(w, id, "Expense") {
		return
	}

	expense, err := s.store.DeleteExpense(r.Context(), identity(r).UserID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Expense not found")
			return
		}
		s.log.Error("delete expense", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to delete expense")
		return
	}
	writeData(w, http.StatusOK, deleteExpenseResponse{Message: "Expense deleted successfully", DeletedExpense: expense})
}
