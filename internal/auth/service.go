package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"daily-diary/server/internal/model"
	"daily-diary/server/internal/store"
)

const (
	minPasswordLen = 4
	minUsernameLen = 2
)

// Token is a signed token together with its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Session is the outcome of a successful Authenticate.
type Session struct {
	User    model.User
	Created bool
	Access  Token
	Refresh Token
}

type Status struct {
	Authenticated bool
	NeedsSetup    bool
	Username      string
}

// Service coordinates credential checks, account creation and token issue.
// It keeps no session state of its own.
type Service struct {
	users   store.UserStore
	hasher  *Hasher
	access  *TokenManager
	refresh *TokenManager

	dummyOnce sync.Once
	dummyHash string
}

func NewService(users store.UserStore, hasher *Hasher, access, refresh *TokenManager) *Service {
	return &Service{
		users:   users,
		hasher:  hasher,
		access:  access,
		refresh: refresh,
	}
}

func (s *Service) AccessTTL() time.Duration  { return s.access.TTL() }
func (s *Service) RefreshTTL() time.Duration { return s.refresh.TTL() }

func validateCredentials(username, password string) (string, error) {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "", invalid(fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
	}
	username = strings.TrimSpace(username)
	if utf8.RuneCountInString(username) < minUsernameLen {
		return "", invalid(fmt.Sprintf("Username must be at least %d characters", minUsernameLen))
	}
	return username, nil
}

// Authenticate logs a user in, or creates the account when no users exist
// yet or when setup is requested.
func (s *Service) Authenticate(ctx context.Context, username, password string, setup bool) (Session, error) {
	username, err := validateCredentials(username, password)
	if err != nil {
		return Session{}, err
	}

	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("count users: %w", err)
	}

	if count == 0 || setup {
		return s.createAccount(ctx, username, password)
	}

	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return Session{}, fmt.Errorf("get user: %w", err)
		}
		// Burn a compare so unknown users cost the same as wrong passwords.
		if _, err := s.hasher.Verify(ctx, password, s.timingHash()); err != nil {
			return Session{}, err
		}
		return Session{}, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(ctx, password, u.PasswordHash)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrInvalidCredentials
	}

	return s.newSession(*u, false)
}

// createAccount leaves uniqueness to the store; a concurrent create of the
// same username loses with store.ErrConflict.
func (s *Service) createAccount(ctx context.Context, username, password string) (Session, error) {
	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return Session{}, err
	}

	u, err := s.users.CreateUser(ctx, model.User{Username: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return Session{}, ErrUsernameTaken
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	return s.newSession(u, true)
}

func (s *Service) newSession(u model.User, created bool) (Session, error) {
	access, accessExp, err := s.access.Issue(u.ID, u.Username)
	if err != nil {
		return Session{}, err
	}
	refresh, refreshExp, err := s.refresh.Issue(u.ID, u.Username)
	if err != nil {
		return Session{}, err
	}
	return Session{
		User:    u,
		Created: created,
		Access:  Token{Value: access, ExpiresAt: accessExp},
		Refresh: Token{Value: refresh, ExpiresAt: refreshExp},
	}, nil
}

// Refresh trades a valid refresh token for a new access token carrying the
// same identity. The refresh token itself is not rotated.
func (s *Service) Refresh(refreshToken string) (Token, Claims, error) {
	claims, err := s.refresh.Verify(refreshToken)
	if err != nil {
		return Token{}, Claims{}, err
	}

	access, exp, err := s.access.Issue(claims.UserID, claims.Username)
	if err != nil {
		return Token{}, Claims{}, err
	}
	return Token{Value: access, ExpiresAt: exp}, claims, nil
}

func (s *Service) VerifyAccess(accessToken string) (Claims, error) {
	return s.access.Verify(accessToken)
}

// Status reports whether accessToken is valid and whether the store is still
// waiting for its first user. Only a store failure is returned as an error.
func (s *Service) Status(ctx context.Context, accessToken string) (Status, error) {
	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("count users: %w", err)
	}

	st := Status{NeedsSetup: count == 0}
	if claims, err := s.access.Verify(accessToken); err == nil {
		st.Authenticated = true
		st.Username = claims.Username
	}
	return st, nil
}

func (s *Service) timingHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(context.Background(), "timing-equalizer")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
