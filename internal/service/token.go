package service

import (
	"fmt"
	"time"

	"restaurant-orders/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// credentials are valid for exactly one hour from issuance
const tokenTTL = time.Hour

// Identity is the decoded subject of a verified credential.
type Identity struct {
	Email string
	Name  string
}

type TokenService interface {
	// Issue signs a time-limited credential for the given claims. Credentials
	// are stateless: nothing is stored and nothing can be revoked early.
	Issue(email, name string) (string, error)
	// Verify validates a presented credential and decodes its identity.
	Verify(token string) (*Identity, error)
}

type credentialClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type tokenServiceImpl struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) TokenService {
	return &tokenServiceImpl{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (s *tokenServiceImpl) Issue(email, name string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("issue credential: empty email")
	}

	now := s.now()
	claims := &credentialClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign credential: %w", err)
	}

	return token, nil
}

func (s *tokenServiceImpl) Verify(token string) (*Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &credentialClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, model.ErrInvalidCredential
	}

	claims, ok := parsed.Claims.(*credentialClaims)
	if !ok || claims.Email == "" {
		return nil, model.ErrInvalidCredential
	}

	return &Identity{
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}
