package httpapi

import (
	"errors"
	"net/http"

	"daily-diary/server/internal/auth"

	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsSetup  bool   `json:"isSetup"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type checkResponse struct {
	IsAuthenticated bool    `json:"isAuthenticated"`
	NeedsSetup      bool    `json:"needsSetup"`
	Username        *string `json:"username"`
}

type clearUsersResponse struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deletedCount"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	sess, err := s.auth.Authenticate(r.Context(), req.Username, req.Password, req.IsSetup)
	if err != nil {
		var verr *auth.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, auth.ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, "Username already exists. Please choose a different username.")
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
		default:
			s.log.Error("login failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Login failed. Please try again.")
		}
		return
	}

	s.setSessionCookie(w, accessCookieName, sess.Access.Value, s.auth.AccessTTL())
	s.setSessionCookie(w, refreshCookieName, sess.Refresh.Value, s.auth.RefreshTTL())

	msg := "Login successful"
	if sess.Created {
		msg = "Account created successfully"
		s.log.Info("account created", zap.String("user_id", sess.User.ID))
	}
	writeData(w, http.StatusOK, loginResponse{Message: msg, Username: sess.User.Username})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(refreshCookieName)
	if err != nil || c.Value == "" {
		writeError(w, http.StatusUnauthorized, "No refresh token provided")
		return
	}

	access, _, err := s.auth.Refresh(c.Value)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
			return
		}
		s.log.Error("token refresh failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	s.setSessionCookie(w, accessCookieName, access.Value, s.auth.AccessTTL())
	writeData(w, http.StatusOK, messageResponse{Message: "Token refreshed successfully"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w, accessCookieName)
	s.clearSessionCookie(w, refreshCookieName)
	writeData(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(accessCookieName); err == nil {
		token = c.Value
	}

	st, err := s.auth.Status(r.Context(), token)
	if err != nil {
		s.log.Error("auth check failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Authentication check failed")
		return
	}

	resp := checkResponse{IsAuthenticated: st.Authenticated, NeedsSetup: st.NeedsSetup}
	if st.Authenticated {
		resp.Username = &st.Username
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleClearUsers(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.DeleteAllUsers(r.Context())
	if err != nil {
		s.log.Error("delete users failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to delete users")
		return
	}
	s.log.Warn("all users deleted", zap.Int("count", n))
	writeData(w, http.StatusOK, clearUsersResponse{Message: "All users deleted successfully", DeletedCount: n})
}
