package http

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/observability"
	"github.com/spec-kit/users-service/internal/repository"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

// MiddlewareConfig bundles dependencies of the global middleware chain.
type MiddlewareConfig struct {
	ServiceName      string
	Logger           *zap.Logger
	Metrics          *observability.Metrics
	Timeout          time.Duration
	CORSOrigins      []string
	CookieModeHeader string
	ErrorLogs        repository.ErrorLogRepository
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(helmet.New(helmet.Config{
		ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self'; img-src 'self' data: https:",
	}))
	app.Use(cors.New(corsConfig(cfg.CORSOrigins, cfg.CookieModeHeader)))
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(errorHandlingMiddleware(cfg.ServiceName, cfg.Logger, cfg.Metrics, cfg.ErrorLogs))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
}

func corsConfig(origins []string, cookieModeHeader string) cors.Config {
	allowHeaders := []string{
		fiber.HeaderOrigin,
		fiber.HeaderContentType,
		fiber.HeaderAccept,
		fiber.HeaderAuthorization,
		fiber.HeaderXRequestID,
	}
	if cookieModeHeader != "" {
		allowHeaders = append(allowHeaders, cookieModeHeader)
	}
	return cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     strings.Join(allowHeaders, ","),
		AllowCredentials: true,
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// ErrorResponse renders a DomainError in the service's error envelope.
func ErrorResponse(c *fiber.Ctx, domainErr *apperrors.DomainError) error {
	body := fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"success": false, "error": body})
}

func errorHandlingMiddleware(serviceName string, logger *zap.Logger, metrics *observability.Metrics, errorLogs repository.ErrorLogRepository) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			var stack []byte
			if r := recover(); r != nil {
				stack = debug.Stack()
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", stack))
				err = apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
					logger.Error("request failed",
						zap.String("path", c.Path()),
						zap.String("request_id", observability.RequestID(c)),
						zap.Error(domainErr))
					persistErrorLog(c, serviceName, domainErr, stack, errorLogs, logger)
				}
				_ = ErrorResponse(c, domainErr)
				err = nil
			}
		}()
		return c.Next()
	}
}

// persistErrorLog stores a 5xx failure with a sanitized copy of the request body.
// Failing to store it is logged and otherwise ignored.
func persistErrorLog(c *fiber.Ctx, serviceName string, domainErr *apperrors.DomainError, stack []byte, errorLogs repository.ErrorLogRepository, logger *zap.Logger) {
	if errorLogs == nil {
		return
	}

	entry := &domain.ErrorLog{
		Service:       serviceName,
		ErrorType:     domainErr.Code,
		ErrorMessage:  domainErr.Error(),
		RequestURL:    c.OriginalURL(),
		RequestMethod: c.Method(),
		Metadata:      map[string]any{"request_id": observability.RequestID(c)},
	}
	if id, role, ok := observability.TaggedPrincipal(c); ok {
		entry.UserID = &id
		entry.UserRole = &role
	}
	if ip := c.IP(); ip != "" {
		entry.IP = &ip
	}
	if ua := c.Get(fiber.HeaderUserAgent); ua != "" {
		entry.UserAgent = &ua
	}
	if body := c.Body(); len(body) > 0 {
		var parsed any
		if json.Unmarshal(body, &parsed) == nil {
			entry.Metadata["body"] = observability.Sanitize(parsed)
		}
	}
	if len(stack) > 0 {
		entry.Metadata["stack"] = string(stack)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := errorLogs.Create(ctx, entry); err != nil {
		logger.Warn("failed to persist error log", zap.Error(err))
	}
}
