package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "workoutapi/internal/errors"
)

// TokenKind separates verification tokens from session tokens so that one can
// never be presented as the other.
type TokenKind string

const (
	// KindVerification tokens carry an email address.
	KindVerification TokenKind = "verification"
	// KindSession tokens carry a user id.
	KindSession TokenKind = "session"
)

// Claims represents JWT claims.
type Claims struct {
	Kind TokenKind `json:"kind"`
	// IssuedAtMs is iat with millisecond precision so revocation can order
	// tokens issued within the same second.
	IssuedAtMs int64 `json:"iat_ms,omitempty"`
	jwt.RegisteredClaims
}

// IssuedAtTime returns the most precise issue time the token carries.
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAtMs > 0 {
		return time.UnixMilli(c.IssuedAtMs)
	}
	if c.IssuedAt != nil {
		return c.IssuedAt.Time
	}
	return time.Time{}
}

// JWTService issues and validates HS256 tokens with a single process-wide secret.
// Rotating the secret invalidates every outstanding token.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue signs a token of the given kind for subject, valid for ttl.
func (s *JWTService) Issue(kind TokenKind, subject string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		Kind:       kind,
		IssuedAtMs: now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates tokenString and checks it is of the expected kind. Every
// failure mode returns ErrInvalidOrExpiredToken.
func (s *JWTService) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperrors.ErrInvalidOrExpiredToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Kind != kind || claims.Subject == "" {
		return nil, apperrors.ErrInvalidOrExpiredToken
	}
	return claims, nil
}
