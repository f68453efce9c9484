package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Locals keys used to tag a request with the authenticated caller for access and error logs.
const (
	localsPrincipalID   = "log_principal_id"
	localsPrincipalRole = "log_principal_role"
	localsRequestID     = "requestid"
)

// TagPrincipal records the caller on the request for logging purposes only.
func TagPrincipal(c *fiber.Ctx, subjectID int64, role string) {
	c.Locals(localsPrincipalID, subjectID)
	c.Locals(localsPrincipalRole, role)
}

// TaggedPrincipal returns what TagPrincipal stored, if anything.
func TaggedPrincipal(c *fiber.Ctx) (int64, string, bool) {
	id, ok := c.Locals(localsPrincipalID).(int64)
	if !ok {
		return 0, "", false
	}
	role, _ := c.Locals(localsPrincipalRole).(string)
	return id, role, true
}

// RequestID returns the id assigned by the requestid middleware.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(localsRequestID).(string)
	return id
}

// RequestLogger writes one access log line per request and feeds request metrics.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		status := c.Response().StatusCode()
		route := c.Route().Path
		if route == "" {
			route = c.Path()
		}
		metrics.RecordRequest(route, c.Method(), status, duration)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", duration),
			zap.String("request_id", RequestID(c)),
		}
		if id, role, ok := TaggedPrincipal(c); ok {
			fields = append(fields, zap.Int64("subject_id", id), zap.String("role", role))
		}
		logger.Info("request", fields...)
		return err
	}
}
