package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService 签发和解析 bearer token，subject 为账户 uuid
type AuthService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(secret, issuer string, ttl time.Duration) *AuthService {
	return &AuthService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *AuthService) Issue(accountUUID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   accountUUID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Resolve 返回 token 对应的账户 uuid
func (s *AuthService) Resolve(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: missing token", ErrUnauthorized)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrUnauthorized)
	}
	return claims.Subject, nil
}
