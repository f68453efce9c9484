package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/users-service/internal/api/dto"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/service"
)

// MastersHandler exposes /masters endpoints.
type MastersHandler struct {
	masters *service.MasterService
}

// NewMastersHandler constructs handler.
func NewMastersHandler(masters *service.MasterService) *MastersHandler {
	return &MastersHandler{masters: masters}
}

// List handles GET /masters.
func (h *MastersHandler) List(c *fiber.Ctx, principal *domain.Principal) error {
	query, err := listQuery(c)
	if err != nil {
		return err
	}
	masters, err := h.masters.List(c.UserContext(), principal, service.MasterListFilters{
		City:       optionalQuery(c, "city"),
		StatusWork: optionalQuery(c, "statusWork"),
		Search:     query.Search,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewMasterResponses(masters)))
}

// Get handles GET /masters/:id.
func (h *MastersHandler) Get(c *fiber.Ctx, _ *domain.Principal) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	master, err := h.masters.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewMasterResponse(master)))
}

// Create handles POST /masters.
func (h *MastersHandler) Create(c *fiber.Ctx, _ *domain.Principal) error {
	var req dto.MasterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	master, err := h.masters.Create(c.UserContext(), masterInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Done("Master created successfully", dto.NewMasterResponse(master)))
}

// Update handles PUT /masters/:id.
func (h *MastersHandler) Update(c *fiber.Ctx, _ *domain.Principal) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.MasterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	master, err := h.masters.Update(c.UserContext(), id, masterInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.Done("Master updated successfully", dto.NewMasterResponse(master)))
}

// Delete handles DELETE /masters/:id.
func (h *MastersHandler) Delete(c *fiber.Ctx, _ *domain.Principal) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.masters.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.Done("Master deleted successfully", nil))
}

// UpdateDocuments handles PUT /masters/:id/documents.
func (h *MastersHandler) UpdateDocuments(c *fiber.Ctx, principal *domain.Principal) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.MasterDocumentsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	master, err := h.masters.UpdateDocuments(c.UserContext(), principal, id, req.ContractDoc, req.PassportDoc)
	if err != nil {
		return err
	}
	return c.JSON(dto.Done("Documents updated successfully", dto.NewMasterResponse(master)))
}

func masterInput(req dto.MasterRequest) service.MasterInput {
	return service.MasterInput{
		Name:       req.Name,
		Login:      req.Login,
		Password:   req.Password,
		Phone:      req.Phone,
		Cities:     req.Cities,
		StatusWork: req.StatusWork,
		Note:       req.Note,
	}
}
