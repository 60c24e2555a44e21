package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/laskin-api/internal/models"
	"github.com/harentsoaR/laskin-api/internal/store"
	"github.com/harentsoaR/laskin-api/internal/utils"
)

type Session struct {
	Token     string       `json:"token"`
	User      *models.User `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

type AuthService struct {
	store    *store.Store
	sessions SessionStore
	secret   []byte
	ttl      time.Duration
	logger   zerolog.Logger
}

func NewAuthService(st *store.Store, sessions SessionStore, secret string, ttl time.Duration, logger zerolog.Logger) *AuthService {
	return &AuthService{
		store:    st,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		logger:   logger.With().Str("component", "auth").Logger(),
	}
}

// Login opens a session for the user whose email and password both match.
// Unknown emails and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		s.logger.Info().Msg("login rejected")
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		s.logger.Info().Msg("login rejected")
		return nil, ErrInvalidCredentials
	}

	token, claims, err := utils.GenerateSessionToken(s.secret, user.Email, user.Role, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("generating session token: %w", err)
	}
	rec := SessionRecord{
		ID:        claims.ID,
		Email:     user.Email,
		CreatedAt: claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.sessions.Save(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Msg("session opened")
	return &Session{Token: token, User: user, ExpiresAt: rec.ExpiresAt}, nil
}

// Logout drops the session behind token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateSessionToken(s.secret, token)
	if err != nil {
		return ErrUnauthorized
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return err
	}
	s.logger.Info().Str("email", claims.Email).Msg("session closed")
	return nil
}

// Resume turns a token back into the current user. The user is looked up
// again on every call, so permission edits apply to open sessions.
func (s *AuthService) Resume(ctx context.Context, token string) (*models.User, error) {
	claims, err := utils.ValidateSessionToken(s.secret, token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	rec, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	user, err := s.store.FindUserByEmail(rec.Email)
	if err != nil {
		s.logger.Warn().Str("email", rec.Email).Msg("session refers to unknown user")
		return nil, ErrUnauthorized
	}
	return user, nil
}
