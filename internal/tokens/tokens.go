package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type Claims struct {
	jwt.RegisteredClaims
}

// Service issues and verifies HS256 identity tokens. It keeps no state
// besides the signing secret and the token lifetime.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret []byte, ttl time.Duration) (*Service, error) {
	if len(secret) == 0 {
		return nil, errors.New("tokens: signing secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("tokens: ttl must be positive, got %s", ttl)
	}
	return &Service{secret: secret, ttl: ttl, now: time.Now}, nil
}

func (s *Service) TTL() time.Duration { return s.ttl }

func (s *Service) Issue(userID uuid.UUID) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *Service) Verify(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, ErrMissingToken
	}

	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return userID, nil
}
