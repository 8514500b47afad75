package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"daily-diary/server/internal/model"
	"daily-diary/server/internal/store"

	"go.uber.org/zap"
)

type createTodoRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Date        string         `json:"date"`
	Status      bool           `json:"status"`
	Priority    model.Priority `json:"priority"`
}

type updateTodoRequest struct {
	ID          string          `json:"id"`
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Status      *bool           `json:"status"`
	Priority    *model.Priority `json:"priority"`
}

type deleteTodoResponse struct {
	Message     string     `json:"message"`
	DeletedTodo model.Todo `json:"deletedTodo"`
}

const msgBadPriority = "Priority must be low, medium, or high"

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	todos, err := s.store.ListTodos(r.Context(), identity(r).UserID, date)
	if err != nil {
		s.log.Error("list todos", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch todos")
		return
	}
	writeData(w, http.StatusOK, todos)
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	title := strings.TrimSpace(req.Title)
	if msg := missingFields(field{"title", title != ""}, field{"date", req.Date != ""}); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if !model.ValidDate(req.Date) {
		writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}
	if req.Priority != "" && !req.Priority.Valid() {
		writeError(w, http.StatusBadRequest, msgBadPriority)
		return
	}

	todo, err := s.store.CreateTodo(r.Context(), model.Todo{
		UserID:      identity(r).UserID,
		Title:       title,
		Description: optionalText(req.Description),
		Date:        req.Date,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		s.log.Error("create todo", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create todo")
		return
	}
	writeData(w, http.StatusCreated, todo)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	var req updateTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if !checkID(w, req.ID, "Todo") {
		return
	}

	var patch model.TodoPatch
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			writeError(w, http.StatusBadRequest, "Title cannot be empty")
			return
		}
		patch.Title = &title
	}
	if req.Description != nil {
		// An empty string clears the description.
		desc := strings.TrimSpace(*req.Description)
		patch.Description = &desc
	}
	patch.Status = req.Status
	if req.Priority != nil {
		if !req.Priority.Valid() {
			writeError(w, http.StatusBadRequest, msgBadPriority)
			return
		}
		patch.Priority = req.Priority
	}
	if patch.Empty() {
		writeError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	todo, err := s.store.UpdateTodo(r.Context(), identity(r).UserID, req.ID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Todo not found")
			return
		}
		s.log.Error("update todo", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update todo")
		return
	}
	writeData(w, http.StatusOK, todo)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if !checkID(w, id, "Todo") {
		return
	}

	todo, err := s.store.DeleteTodo(r.Context(), identity(r).UserID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Todo not found")
			return
		}
		s.log.Error("delete todo", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to delete todo")
		return
	}
	writeData(w, http.StatusOK, deleteTodoResponse{Message: "Todo deleted successfully", DeletedTodo: todo})
}
