package auth

import (
	"net/http"

	apperrors "github.com/spec-kit/users-service/pkg/util"
)

// Authentication and authorization failures. Each carries a stable code and a
// user-facing message; none of them wrap internal detail.
var (
	ErrAuthenticationRequired = apperrors.NewDomainError("AUTHENTICATION_REQUIRED", "Authentication required.", http.StatusUnauthorized, nil)
	ErrTokenExpired           = apperrors.NewDomainError("TOKEN_EXPIRED", "Access token has expired. Please refresh your token.", http.StatusUnauthorized, nil)
	ErrInvalidSignature       = apperrors.NewDomainError("INVALID_SIGNATURE", "Invalid access token.", http.StatusUnauthorized, nil)
	ErrMalformedToken         = apperrors.NewDomainError("MALFORMED_TOKEN", "Invalid token payload.", http.StatusUnauthorized, nil)
	ErrInvalidRole            = apperrors.NewDomainError("INVALID_ROLE", "Invalid role in token.", http.StatusUnauthorized, nil)
	ErrInvalidCookieSignature = apperrors.NewDomainError("INVALID_COOKIE_SIGNATURE", "Invalid access token signature. Possible tampering.", http.StatusUnauthorized, nil)
	ErrPrincipalNotFound      = apperrors.NewDomainError("PRINCIPAL_NOT_FOUND", "User not found.", http.StatusUnauthorized, nil)
	ErrForbiddenRole          = apperrors.NewDomainError("FORBIDDEN_ROLE", "Insufficient role for this resource.", http.StatusForbidden, nil)
	ErrForbiddenOwnership     = apperrors.NewDomainError("FORBIDDEN_OWNERSHIP", "You can only access your own resources.", http.StatusForbidden, nil)
	ErrForbiddenSelfAction    = apperrors.NewDomainError("FORBIDDEN_OWNERSHIP", "You cannot perform this action on yourself.", http.StatusForbidden, nil)
)
