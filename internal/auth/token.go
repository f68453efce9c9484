package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/users-service/internal/config"
	"github.com/spec-kit/users-service/internal/domain"
)

// TokenCodec verifies HS256 access tokens against the shared secret.
// Verification is pure; the codec holds no mutable state.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec builds a codec. Secrets shorter than config.MinJWTSecretLength are rejected.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if secret == "" {
		return nil, config.ErrJWTSecretMissing
	}
	if len(secret) < config.MinJWTSecretLength {
		return nil, config.ErrJWTSecretTooShort
	}
	return &TokenCodec{secret: []byte(secret), now: time.Now}, nil
}

// Claims describes the access token payload.
type Claims struct {
	SubjectID subjectID   `json:"sub"`
	Login     string      `json:"login"`
	Role      domain.Role `json:"role"`
	Cities    []string    `json:"cities,omitempty"`
	jwt.RegisteredClaims
}

// subjectID accepts the subject as a JSON number or a numeric string.
type subjectID int64

func (s *subjectID) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("subject must be an integer: %w", err)
	}
	*s = subjectID(id)
	return nil
}

// Verify validates signature, expiry and required claims and returns the principal they describe.
func (tc *TokenCodec) Verify(raw string) (*domain.Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return tc.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tc.now),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	if claims.SubjectID <= 0 || strings.TrimSpace(claims.Login) == "" || claims.Role == "" {
		return nil, ErrMalformedToken
	}
	if !claims.Role.Valid() {
		return nil, ErrInvalidRole
	}

	principal := &domain.Principal{
		SubjectID: int64(claims.SubjectID),
		Login:     claims.Login,
		Role:      claims.Role,
		Cities:    claims.Cities,
	}
	if claims.IssuedAt != nil {
		principal.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}
	return principal, nil
}

// Sign mints a token for the principal. Issuance belongs to the login service;
// this exists for tooling and tests.
func (tc *TokenCodec) Sign(principal domain.Principal, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	now := tc.now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		SubjectID: subjectID(principal.SubjectID),
		Login:     principal.Login,
		Role:      principal.Role,
		Cities:    principal.Cities,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		// Signature checked out; the time claims are unusable.
		return ErrMalformedToken
	default:
		return ErrInvalidSignature
	}
}
