package httpapi

import (
	"net/http"
	"testing"

	"daily-diary/server/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiaryRoutesRequireAuth(t *testing.T) {
	e := newTestEnv(t, Options{})
	cookies := e.login(t, "alice", "pass")

	routes := []struct{ method, path string }{
		{http.MethodGet, "/todos?date=2024-05-01"},
		{http.MethodPost, "/todos"},
		{http.MethodPatch, "/todos"},
		{http.MethodDelete, "/todos?id=x"},
		{http.MethodGet, "/expenses?date=2024-05-01"},
		{http.MethodPost, "/expenses"},
		{http.MethodDelete, "/expenses?id=x"},
		{http.MethodGet, "/notes?date=2024-05-01"},
		{http.MethodPost, "/notes"},
	}
	for _, rt := range routes {
		rec := e.do(t, rt.method, rt.path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, rt.path)
		assert.Equal(t, "Unauthorized", decodeEnvelope(t, rec, nil).Error)

		// A refresh token is not an access token.
		swapped := &http.Cookie{Name: accessCookieName, Value: cookies[refreshCookieName].Value}
		rec = e.do(t, rt.method, rt.path, nil, swapped)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, rt.path)
	}
}

func TestTodos(t *testing.T) {
	e := newTestEnv(t, Options{})
	alice := e.login(t, "alice", "pass")[accessCookieName]

	rec := e.do(t, http.MethodPost, "/todos", map[string]any{
		"title": "  buy milk ", "description": "   ", "date": "2024-05-01",
	}, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var todo model.Todo
	decodeEnvelope(t, rec, &todo)
	assert.Equal(t, "buy milk", todo.Title)
	assert.Nil(t, todo.Description)
	assert.Equal(t, model.PriorityMedium, todo.Priority)
	assert.False(t, todo.Status)

	rec = e.do(t, http.MethodGet, "/todos?date=2024-05-01", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var todos []model.Todo
	decodeEnvelope(t, rec, &todos)
	require.Len(t, todos, 1)
	assert.Equal(t, todo.ID, todos[0].ID)

	rec = e.do(t, http.MethodPatch, "/todos", map[string]any{"id": todo.ID, "status": true, "priority": "high"}, alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeEnvelope(t, rec, &todo)
	assert.True(t, todo.Status)
	assert.Equal(t, model.PriorityHigh, todo.Priority)

	rec = e.do(t, http.MethodDelete, "/todos?id="+todo.ID, nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted deleteTodoResponse
	decodeEnvelope(t, rec, &deleted)
	assert.Equal(t, "Todo deleted successfully", deleted.Message)
	assert.Equal(t, todo.ID, deleted.DeletedTodo.ID)

	rec = e.do(t, http.MethodDelete, "/todos?id="+todo.ID, nil, alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Todo not found", decodeEnvelope(t, rec, nil).Error)
}

func TestTodos_Validation(t *testing.T) {
	e := newTestEnv(t, Options{})
	alice := e.login(t, "alice", "pass")[accessCookieName]

	cases := []struct {
		name, method, path string
		body               any
		msg                string
	}{
		{"list no date", http.MethodGet, "/todos", nil, "Date parameter is required"},
		{"list bad date", http.MethodGet, "/todos?date=2024-02-30", nil, "Invalid date format. Use YYYY-MM-DD"},
		{"create missing", http.MethodPost, "/todos", map[string]any{}, "Missing required fields: title, date"},
		{"create bad date", http.MethodPost, "/todos", map[string]any{"title": "t", "date": "05/01/2024"}, "Invalid date format. Use YYYY-MM-DD"},
		{"create bad priority", http.MethodPost, "/todos", map[string]any{"title": "t", "date": "2024-05-01", "priority": "urgent"}, "Priority must be low, medium, or high"},
		{"patch no id", http.MethodPatch, "/todos", map[string]any{"status": true}, "Todo ID is required"},
		{"patch bad id", http.MethodPatch, "/todos", map[string]any{"id": "123", "status": true}, "Invalid todo ID format"},
		{"patch nothing", http.MethodPatch, "/todos", map[string]any{"id": uuid.NewString()}, "No fields to update"},
		{"patch bad priority", http.MethodPatch, "/todos", map[string]any{"id": uuid.NewString(), "priority": "x"}, "Priority must be low, medium, or high"},
		{"delete no id", http.MethodDelete, "/todos", nil, "Todo ID is required"},
		{"delete bad id", http.MethodDelete, "/todos?id=abc", nil, "Invalid todo ID format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := e.do(t, tc.method, tc.path, tc.body, alice)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.msg, decodeEnvelope(t, rec, nil).Error)
		})
	}
}

func TestTodos_ScopedToOwner(t *testing.T) {
	e := newTestEnv(t, Options{})
	alice := e.login(t, "alice", "pass")[accessCookieName]

	rec := e.do(t, http.MethodPost, "/auth/login", map[string]any{"username": "bob", "password": "word", "isSetup": true})
	require.Equal(t, http.StatusOK, rec.Code)
	bob := cookieMap(rec)[accessCookieName]

	rec = e.do(t, http.MethodPost, "/todos", map[string]any{"title": "secret", "date": "2024-05-01"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	var todo model.Todo
	decodeEnvelope(t, rec, &todo)

	rec = e.do(t, http.MethodGet, "/todos?date=2024-05-01", nil, bob)
	var todos []model.Todo
	decodeEnvelope(t, rec, &todos)
	assert.Empty(t, todos)

	rec = e.do(t, http.MethodPatch, "/todos", map[string]any{"id": todo.ID, "title": "mine"}, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodDelete, "/todos?id="+todo.ID, nil, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExpenses(t *testing.T) {
	e := newTestEnv(t, Options{})
	alice := e.login(t, "alice", "pass")[accessCookieName]

	rec := e.do(t, http.MethodPost, "/expenses", map[string]any{
		"amount": 12.5, "category": " food ", "date": "2024-05-01", "note": "lunch",
	}, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var expense model.Expense
	decodeEnvelope(t, rec, &expense)
	assert.Equal(t, 12.5, expense.Amount)
	assert.Equal(t, "food", expense.Category)
	require.NotNil(t, expense.Note)
	assert.Equal(t, "lunch", *expense.Note)

	rec = e.do(t, http.MethodGet, "/expenses?date=2024-05-01", nil, alice)
	var expenses []model.Expense
	decodeEnvelope(t, rec, &expenses)
	require.Len(t, expenses, 1)

	rec = e.do(t, http.MethodDelete, "/expenses?id="+expense.ID, nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted deleteExpenseResponse
	decodeEnvelope(t, rec, &deleted)
	assert.Equal(t, "Expense deleted successfully", deleted.Message)

	rec = e.do(t, http.MethodDelete, "/expenses?id="+expense.ID, nil, alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Expense not found", decodeEnvelope(t, rec, nil).Error)
}

func TestExpenses_Validation(t *testing.T) {
	e := newTestEnv(t, Options{})
	alice := e.login(t, "alice", "pass")[accessCookieName]

	cases := []struct {
		name string
		body map[string]any
		msg  string
	}{
		{"missing all", map[string]any{}, "Missing required fields: amount, category, date"},
		{"zero amount", map[string]any{"amount": 0, "category": "c", "date": "2024-05-01"}, "Missing required fields: amount"},
		{"negative amount", map[string]any{"amount": -3, "category": "c", "date": "2024-05-01"}, "Amount must be a positive number"},
		{"string amount", map[string]any{"amount": "12", "category": "c", "date": "2024-05-01"}, "Amount must be a positive number"},
		{"bad date", map[string]any{"amount": 1, "category": "c", "date": "2024-13-01"}, "Invalid date format. Use YYYY-MM-DD"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := e.do(t, http.MethodPost, "/expenses", tc.body, alice)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.msg, decodeEnvelope(t, rec, nil).Error)
		})
	}

	rec := e.do(t, http.MethodDelete, "/expenses?id=nope", nil, alice)
	assert.Equal(t, "Invalid expense ID format", decodeEnvelope(t, rec, nil).Error)
}

func TestNotes(t *testing.T) {
	e := newTestEnv(t, Options{})
	alice := e.login(t, "alice", "pass")[accessCookieName]

	rec := e.do(t, http.MethodGet, "/notes?date=2024-05-01", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"date":"2024-05-01","content":""}}`, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/notes", map[string]any{"date": "2024-05-01", "content": " rainy "}, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var first model.Note
	decodeEnvelope(t, rec, &first)
	assert.Equal(t, "rainy", first.Content)

	rec = e.do(t, http.MethodPost, "/notes", map[string]any{"date": "2024-05-01", "content": "sunny"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	var second model.Note
	decodeEnvelope(t, rec, &second)
	assert.Equal(t, first.ID, second.ID)

	rec = e.do(t, http.MethodGet, "/notes?date=2024-05-01", nil, alice)
	var got model.Note
	decodeEnvelope(t, rec, &got)
	assert.Equal(t, "sunny", got.Content)

	rec = e.do(t, http.MethodPost, "/notes", map[string]any{"date": "2024-05-01"}, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields: content", decodeEnvelope(t, rec, nil).Error)
}
