// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

const (
	defaultAccessTokenTTL = 15 * time.Minute

	tokenTypeAccess = "access"
	tokenIssuer     = "bizledger"
)

// AccessClaims is the JWT payload of a ledger access token.
type AccessClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
	parser *jwt.Parser
}

// NewTokenService returns an HS256 token service signing with secret.
func NewTokenService(secret string) adapter.TokenService {
	return &tokenService{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
		),
	}
}

func (s *tokenService) IssueAccessToken(ctx context.Context, p adapter.Principal, ttl time.Duration) (string, error) {
	if p.UserID == uuid.Nil {
		return "", fmt.Errorf("%w: principal has no user ID", domainerror.ErrInvalidToken)
	}
	if ttl <= 0 {
		ttl = defaultAccessTokenTTL
	}

	now := time.Now().UTC()
	claims := AccessClaims{
		UserID:    p.UserID.String(),
		Email:     p.Email,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   p.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) VerifyAccessToken(ctx context.Context, raw string) (*adapter.Principal, error) {
	var claims AccessClaims
	_, err := s.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %v", domainerror.ErrExpiredToken, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	}

	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("%w: token type %q", domainerror.ErrInvalidToken, claims.TokenType)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil || userID == uuid.Nil {
		return nil, fmt.Errorf("%w: bad user_id claim", domainerror.ErrInvalidToken)
	}

	return &adapter.Principal{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
