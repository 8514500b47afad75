package httpapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type healthDBResponse struct {
	Message string `json:"message"`
	Store   string `json:"store,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleHealthDB(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.log.Error("database ping failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Database connection failed")
		return
	}
	writeData(w, http.StatusOK, healthDBResponse{Message: "Database connection successful", Store: s.opts.StoreKind})
}
