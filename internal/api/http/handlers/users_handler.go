package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/users-service/internal/api/dto"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/service"
)

// UsersHandler exposes endpoints about the calling user.
type UsersHandler struct {
	profiles *service.ProfileService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(profiles *service.ProfileService) *UsersHandler {
	return &UsersHandler{profiles: profiles}
}

// Profile handles GET /users/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx, principal *domain.Principal) error {
	profile, err := h.profiles.Get(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewProfileResponse(profile)))
}
