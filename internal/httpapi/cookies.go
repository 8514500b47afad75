package httpapi

import (
	"net/http"
	"time"
)

func (s *Server) sessionCookie(name, value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if s.opts.Production {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

func (s *Server) setSessionCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, s.sessionCookie(name, value, ttl))
}

// clearSessionCookie expires name with the same attributes it was set with.
func (s *Server) clearSessionCookie(w http.ResponseWriter, name string) {
	c := s.sessionCookie(name, "", 0)
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}
