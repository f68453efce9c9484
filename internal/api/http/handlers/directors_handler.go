package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/users-service/internal/api/dto"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/service"
)

// DirectorsHandler exposes /directors endpoints.
type DirectorsHandler struct {
	directors *service.DirectorService
}

// NewDirectorsHandler constructs handler.
func NewDirectorsHandler(directors *service.DirectorService) *DirectorsHandler {
	return &DirectorsHandler{directors: directors}
}

// List handles GET /directors.
func (h *DirectorsHandler) List(c *fiber.Ctx, principal *domain.Principal) error {
	query, err := listQuery(c)
	if err != nil {
		return err
	}
	directors, err := h.directors.List(c.UserContext(), principal, service.DirectorListFilters{
		Search: query.Search,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewDirectorResponses(directors)))
}

// Get handles GET /directors/:id.
func (h *DirectorsHandler) Get(c *fiber.Ctx, principal *domain.Principal) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	director, err := h.directors.Get(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewDirectorResponse(director)))
}

// Create handles POST /directors.
func (h *DirectorsHandler) Create(c *fiber.Ctx, _ *domain.Principal) error {
	var req dto.DirectorRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	director, err := h.directors.Create(c.UserContext(), directorInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Done("Director created successfully", dto.NewDirectorResponse(director)))
}

// Update handles PUT /directors/:id.
func (h *DirectorsHandler) Update(c *fiber.Ctx, principal *domain.Principal) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.DirectorRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	director, err := h.directors.Update(c.UserContext(), principal, id, directorInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.Done("Director updated successfully", dto.NewDirectorResponse(director)))
}

// Delete handles DELETE /directors/:id.
func (h *DirectorsHandler) Delete(c *fiber.Ctx, principal *domain.Principal) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.directors.Delete(c.UserContext(), principal, id); err != nil {
		return err
	}
	return c.JSON(dto.Done("Director deleted successfully", nil))
}

func directorInput(req dto.DirectorRequest) service.DirectorInput {
	return service.DirectorInput{
		Name:        req.Name,
		Login:       req.Login,
		Password:    req.Password,
		Cities:      req.Cities,
		TgID:        req.TgID,
		Note:        req.Note,
		ContractDoc: req.ContractDoc,
		PassportDoc: req.PassportDoc,
	}
}
