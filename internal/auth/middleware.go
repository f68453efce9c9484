package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/observability"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

// PrincipalStore answers whether a principal of the given role still exists.
type PrincipalStore interface {
	ExistsByRoleAndID(ctx context.Context, role domain.Role, id int64) (bool, error)
}

// Credentials is the request material the authenticator inspects.
type Credentials struct {
	Authorization string
	Origin        string
	Cookie        func(name string) string
}

// Authenticator turns request credentials into a verified, existing Principal.
type Authenticator struct {
	tokens  *TokenCodec
	cookies *CookieExtractor
	cache   *ExistenceCache
	store   PrincipalStore
	logger  *zap.Logger
	metrics *observability.Metrics
}

// AuthenticatorDeps bundles the collaborators of an Authenticator.
type AuthenticatorDeps struct {
	Tokens  *TokenCodec
	Cookies *CookieExtractor
	Cache   *ExistenceCache
	Store   PrincipalStore
	Logger  *zap.Logger
	Metrics *observability.Metrics
}

// NewAuthenticator constructs the authenticator. Cache, logger and metrics are optional.
func NewAuthenticator(deps AuthenticatorDeps) *Authenticator {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cache := deps.Cache
	if cache == nil {
		cache = NewExistenceCache(DefaultExistenceTTL, DefaultExistenceMaxSize, deps.Metrics)
	}
	return &Authenticator{
		tokens:  deps.Tokens,
		cookies: deps.Cookies,
		cache:   cache,
		store:   deps.Store,
		logger:  logger,
		metrics: deps.Metrics,
	}
}

// Authenticate runs cookie extraction, token verification and the existence check.
// Any failure is one of the auth sentinel errors.
func (a *Authenticator) Authenticate(ctx context.Context, creds Credentials) (*domain.Principal, error) {
	header := strings.TrimSpace(creds.Authorization)
	if header == "" && a.cookies != nil {
		token, err := a.cookies.Extract(creds.Cookie, creds.Origin)
		if err != nil {
			a.logger.Warn("access cookie signature mismatch, possible tampering",
				zap.String("origin", creds.Origin))
			return nil, a.reject(err)
		}
		if token != "" {
			header = "Bearer " + token
		}
	}

	raw, ok := bearerToken(header)
	if !ok {
		return nil, a.reject(ErrAuthenticationRequired)
	}

	principal, err := a.tokens.Verify(raw)
	if err != nil {
		a.logger.Debug("token rejected", zap.Error(err))
		return nil, a.reject(err)
	}

	exists, err := a.cache.CheckExists(ctx, principal.Role, principal.SubjectID, func(ctx context.Context) (bool, error) {
		return a.store.ExistsByRoleAndID(ctx, principal.Role, principal.SubjectID)
	})
	if err != nil {
		a.logger.Error("principal existence check failed",
			zap.String("role", principal.Role.String()),
			zap.Int64("subject_id", principal.SubjectID),
			zap.Error(err))
		return nil, a.reject(ErrPrincipalNotFound)
	}
	if !exists {
		a.logger.Warn("principal not found",
			zap.String("role", principal.Role.String()),
			zap.Int64("subject_id", principal.SubjectID))
		return nil, a.reject(ErrPrincipalNotFound)
	}

	a.metrics.RecordAuth("success")
	return principal, nil
}

func (a *Authenticator) reject(err error) error {
	outcome := "error"
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		outcome = domainErr.Code
	}
	a.metrics.RecordAuth(outcome)
	return err
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// PrincipalHandler is a route handler that receives the authenticated caller explicitly.
type PrincipalHandler func(c *fiber.Ctx, principal *domain.Principal) error

// AuthMiddleware adapts the Authenticator and route policies to fiber.
type AuthMiddleware struct {
	authenticator    *Authenticator
	cookieModeHeader string
	logger           *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(authenticator *Authenticator, cookieModeHeader string, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{authenticator: authenticator, cookieModeHeader: cookieModeHeader, logger: logger}
}

// Protect authenticates the request, checks the route policy and then calls next
// with the principal. Failures short-circuit before next runs.
func (m *AuthMiddleware) Protect(policy RoutePolicy, next PrincipalHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := m.authenticator.Authenticate(c.UserContext(), m.credentials(c))
		if err != nil {
			return err
		}
		observability.TagPrincipal(c, principal.SubjectID, principal.Role.String())

		if err := policy.Authorize(principal); err != nil {
			m.logger.Warn("route policy denied",
				zap.String("path", c.Path()),
				zap.String("role", principal.Role.String()),
				zap.Int64("subject_id", principal.SubjectID))
			return err
		}
		return next(c, principal)
	}
}

func (m *AuthMiddleware) credentials(c *fiber.Ctx) Credentials {
	if m.cookieModeHeader != "" && c.Get(m.cookieModeHeader) == "true" {
		m.logger.Debug("client prefers cookie mode", zap.String("path", c.Path()))
	}
	return Credentials{
		Authorization: c.Get(fiber.HeaderAuthorization),
		Origin:        c.Get(fiber.HeaderOrigin),
		Cookie: func(name string) string {
			return c.Cookies(name)
		},
	}
}
