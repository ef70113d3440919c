package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every reason a bearer token is rejected.
var ErrInvalidToken = errors.New("invalid token")

// Payload is the verified content of a bearer token.
type Payload struct {
	Subject   uint      `json:"sub"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	Audience  string    `json:"aud"`
	Issuer    string    `json:"iss"`
	Email     string    `json:"email"`
}

// Claims defines the information stored in the JWT.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret   []byte
	audience string
	issuer   string
	ttl      time.Duration
	now      func() time.Time
}

func NewTokenManager(secret, audience, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		audience: audience,
		issuer:   issuer,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue signs a token whose subject is userID.
func (m *TokenManager) Issue(userID uint, email string) (string, *Payload, error) {
	now := m.now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Audience:  jwt.ClaimStrings{m.audience},
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, payloadFrom(userID, claims), nil
}

// Verify checks signature, algorithm, expiry, audience and issuer.
func (m *TokenManager) Verify(tokenString string) (*Payload, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(m.audience),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || sub == 0 {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}
	return payloadFrom(uint(sub), claims), nil
}

func payloadFrom(sub uint, c *Claims) *Payload {
	p := &Payload{
		Subject: sub,
		Issuer:  c.Issuer,
		Email:   c.Email,
	}
	if len(c.Audience) > 0 {
		p.Audience = c.Audience[0]
	}
	if c.IssuedAt != nil {
		p.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}
	return p
}
