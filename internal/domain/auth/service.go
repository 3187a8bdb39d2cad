package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Spok95/material-report-bot/internal/infra/api"
)

var ErrNotAuthenticated = errors.New("auth: not authenticated")

type TokenStore interface {
	Get(ctx context.Context, chatID int64) (string, error)
	Save(ctx context.Context, chatID int64, username, token string) error
	Delete(ctx context.Context, chatID int64) error
}

type SignInClient interface {
	SignIn(ctx context.Context, username, password string) (string, error)
}

// State что видит отчёт: авторизован ли чат и с какой сессией ходить в API.
type State struct {
	Authenticated bool
	Session       api.Session
}

type Service struct {
	tokens TokenStore
	client SignInClient
	log    *slog.Logger
}

func NewService(tokens TokenStore, client SignInClient, log *slog.Logger) *Service {
	return &Service{tokens: tokens, client: client, log: log}
}

func (s *Service) State(ctx context.Context, chatID int64) (State, error) {
	token, err := s.tokens.Get(ctx, chatID)
	if err != nil {
		return State{}, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return State{}, nil
	}
	return State{Authenticated: true, Session: api.Session{Token: token}}, nil
}

// Session сессия для запросов или ErrNotAuthenticated.
func (s *Service) Session(ctx context.Context, chatID int64) (api.Session, error) {
	st, err := s.State(ctx, chatID)
	if err != nil {
		return api.Session{}, err
	}
	if !st.Authenticated {
		return api.Session{}, ErrNotAuthenticated
	}
	return st.Session, nil
}

// LoginError текст для пользователя при неудачном входе.
type LoginError struct {
	Reason string
	Err    error
}

func (e *LoginError) Error() string { return e.Reason }
func (e *LoginError) Unwrap() error { return e.Err }

func (s *Service) Login(ctx context.Context, chatID int64, username, password string) error {
	token, err := s.client.SignIn(ctx, username, password)
	if err != nil {
		reason := "Login failed"
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status != 0 && apiErr.Message != "" {
			reason = apiErr.Message
		}
		s.log.Warn("sign-in failed", "chat_id", chatID, "username", username, "err", err)
		return &LoginError{Reason: reason, Err: err}
	}
	if err := s.tokens.Save(ctx, chatID, username, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	s.log.Info("signed in", "chat_id", chatID, "username", username)
	return nil
}

func (s *Service) Logout(ctx context.Context, chatID int64) error {
	if err := s.tokens.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	s.log.Info("signed out", "chat_id", chatID)
	return nil
}

// Expire токен отвергнут сервером (401) — забываем его.
func (s *Service) Expire(ctx context.Context, chatID int64) error {
	s.log.Info("token expired", "chat_id", chatID)
	return s.tokens.Delete(ctx, chatID)
}
