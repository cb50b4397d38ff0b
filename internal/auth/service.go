package auth

import (
	"context"
	"errors"
	"fmt"

	sharedauth "resume-optimizer/internal/shared/auth"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/internal/users"
)

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

// TokenIssuer signs and verifies access/refresh token pairs.
type TokenIssuer interface {
	IssuePair(userID string) (sharedauth.TokenPair, error)
	Verify(token, wantType string) (sharedauth.Claims, error)
}

// TokenResponse is returned by register, login and refresh.
type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	User         users.Response `json:"user"`
}

type Service struct {
	Users  *users.Service
	Tokens TokenIssuer
}

func NewService(usersSvc *users.Service, tokens TokenIssuer) *Service {
	return &Service{Users: usersSvc, Tokens: tokens}
}

// Register creates the account and signs the user in.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (TokenResponse, error) {
	user, err := s.Users.Create(ctx, email, password, fullName)
	if err != nil {
		return TokenResponse{}, err
	}
	telemetry.Info("auth.registered", map[string]any{"user_id": user.ID})
	return s.tokensFor(user)
}

func (s *Service) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	user, err := s.Users.Authenticate(ctx, email, password)
	if errors.Is(err, users.ErrWrongPassword) {
		return TokenResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return TokenResponse{}, err
	}
	return s.tokensFor(user)
}

// Refresh exchanges a valid refresh token of an active user for a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenResponse, error) {
	claims, err := s.Tokens.Verify(refreshToken, sharedauth.TokenTypeRefresh)
	if err != nil {
		return TokenResponse{}, ErrInvalidRefresh
	}
	user, err := s.Users.GetByID(ctx, claims.UserID())
	if errors.Is(err, users.ErrNotFound) || errors.Is(err, users.ErrInvalidInput) {
		return TokenResponse{}, ErrInvalidRefresh
	}
	if err != nil {
		return TokenResponse{}, err
	}
	if !user.IsActive {
		return TokenResponse{}, ErrInvalidRefresh
	}
	return s.tokensFor(user)
}

func (s *Service) tokensFor(user users.User) (TokenResponse, error) {
	pair, err := s.Tokens.IssuePair(user.ID)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("issue tokens: %w", err)
	}
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		User:         user.Response(),
	}, nil
}
