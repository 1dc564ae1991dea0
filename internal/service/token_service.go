package service

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/ivdepaste/ivdepaste-api/internal/models"
	"github.com/ivdepaste/ivdepaste-api/pkg/config"
	appErrors "github.com/ivdepaste/ivdepaste-api/pkg/errors"
)

// TokenService validates session tokens minted by the external identity
// provider. The provider itself is opaque: no tokens are issued here,
// no credentials are stored, the shared signing secret is the whole
// contract.
type TokenService struct {
	cfg config.JWTConfig
}

// NewTokenService constructs a TokenService.
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// ValidateToken parses and verifies a raw token, returning its claims.
func (s *TokenService) ValidateToken(raw string) (*models.JWTClaims, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(s.cfg.Issuer))
	}
	for _, aud := range s.cfg.Audience {
		options = append(options, jwt.WithAudience(aud))
	}

	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, options...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
	}
	if !token.Valid || claims.UserID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token")
	}

	return claims, nil
}
