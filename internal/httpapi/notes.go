package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"daily-diary/server/internal/model"
	"daily-diary/server/internal/store"

	"go.uber.org/zap"
)

type saveNoteRequest struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	note, err := s.store.GetNote(r.Context(), identity(r).UserID, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeData(w, http.StatusOK, emptyNote{Date: date, Content: ""})
			return
		}
		s.log.Error("get note", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch note")
		return
	}
	writeData(w, http.StatusOK, note)
}

// emptyNote is returned for a day without a saved note.
type emptyNote struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

func (s *Server) handleSaveNote(w http.ResponseWriter, r *http.Request) {
	var req saveNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if msg := missingFields(field{"date", req.Date != ""}, field{"content", req.Content != ""}); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if !model.ValidDate(req.Date) {
		writeError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	note, err := s.store.UpsertNote(r.Context(), model.Note{
		UserID:  identity(r).UserID,
		Date:    req.Date,
		Content: strings.TrimSpace(req.Content),
	})
	if err != nil {
		s.log.Error("save note", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save note")
		return
	}
	writeData(w, http.StatusCreated, note)
}
