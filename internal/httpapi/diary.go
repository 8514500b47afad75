package httpapi

import (
	"net/http"
	"strings"

	"daily-diary/server/internal/model"

	"github.com/google/uuid"
)

// dateParam reads and validates the ?date= query parameter. On failure the
// response has been written.
func dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "Date parameter is required")
		return "", false
	}
	if !model.ValidDate(date) {
		writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return "", false
	}
	return date, true
}

// checkID validates a resource id. kind is the resource name used in the
// messages ("Todo", "Expense").
func checkID(w http.ResponseWriter, id, kind string) bool {
	if id == "" {
		writeError(w, http.StatusBadRequest, kind+" ID is required")
		return false
	}
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+strings.ToLower(kind)+" ID format")
		return false
	}
	return true
}

// missingFields reports "Missing required fields: a, b" for every name whose
// present flag is false, or "" when nothing is missing.
func missingFields(fields ...field) string {
	var missing []string
	for _, f := range fields {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return ""
	}
	return "Missing required fields: " + strings.Join(missing, ", ")
}

type field struct {
	name    string
	present bool
}

// optionalText trims p and maps a missing or blank value to nil.
func optionalText(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
