package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/users-service/internal/api/dto"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

func pathID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("id must be a positive integer", map[string]any{"id": raw})
	}
	return id, nil
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil
	}
	return &value
}

func listQuery(c *fiber.Ctx) (dto.ListQuery, error) {
	query := dto.ListQuery{
		Search: optionalQuery(c, "search"),
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	if query.Search != nil && len([]rune(*query.Search)) > dto.MaxSearchLength {
		return query, apperrors.NewValidationError("search query must not exceed 100 characters", map[string]any{"field": "search"})
	}
	return query, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}
