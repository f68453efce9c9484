package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/users-service/internal/api/dto"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/service"
)

// OperatorsHandler exposes /operators endpoints.
type OperatorsHandler struct {
	operators *service.OperatorService
}

// NewOperatorsHandler constructs handler.
func NewOperatorsHandler(operators *service.OperatorService) *OperatorsHandler {
	return &OperatorsHandler{operators: operators}
}

func requiredType(c *fiber.Ctx, fallback string) (domain.OperatorType, error) {
	raw := c.Query("type")
	if raw == "" {
		raw = fallback
	}
	return service.ParseOperatorType(raw)
}

// List handles GET /operators?type=admin|operator.
func (h *OperatorsHandler) List(c *fiber.Ctx, _ *domain.Principal) error {
	var opType *domain.OperatorType
	if raw := c.Query("type"); raw != "" {
		parsed, err := service.ParseOperatorType(raw)
		if err != nil {
			return err
		}
		opType = &parsed
	}

	listing, err := h.operators.List(c.UserContext(), opType)
	if err != nil {
		return err
	}
	switch {
	case opType == nil:
		return c.JSON(dto.OK(dto.OperatorListingResponse{
			Admins:    dto.NewOperatorResponses(listing.Admins),
			Operators: dto.NewOperatorResponses(listing.Operators),
		}))
	case *opType == domain.OperatorTypeAdmin:
		return c.JSON(dto.OK(dto.NewOperatorResponses(listing.Admins)))
	default:
		return c.JSON(dto.OK(dto.NewOperatorResponses(listing.Operators)))
	}
}

// Get handles GET /operators/:id?type=.
func (h *OperatorsHandler) Get(c *fiber.Ctx, _ *domain.Principal) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	opType, err := requiredType(c, "")
	if err != nil {
		return err
	}
	operator, err := h.operators.Get(c.UserContext(), opType, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewOperatorResponse(operator)))
}

// Create handles POST /operators.
func (h *OperatorsHandler) Create(c *fiber.Ctx, _ *domain.Principal) error {
	var req dto.OperatorRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	opType, err := requiredType(c, req.Type)
	if err != nil {
		return err
	}
	operator, err := h.operators.Create(c.UserContext(), opType, operatorInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Done(operatorNoun(opType)+" created successfully", dto.NewOperatorResponse(operator)))
}

// Update handles PUT /operators/:id?type=.
func (h *OperatorsHandler) Update(c *fiber.Ctx, _ *domain.Principal) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.OperatorRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	opType, err := requiredType(c, req.Type)
	if err != nil {
		return err
	}
	operator, err := h.operators.Update(c.UserContext(), opType, id, operatorInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.Done(operatorNoun(opType)+" updated successfully", dto.NewOperatorResponse(operator)))
}

// Delete handles DELETE /operators/:id?type=.
func (h *OperatorsHandler) Delete(c *fiber.Ctx, _ *domain.Principal) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	opType, err := requiredType(c, "")
	if err != nil {
		return err
	}
	if err := h.operators.Delete(c.UserContext(), opType, id); err != nil {
		return err
	}
	return c.JSON(dto.Done(operatorNoun(opType)+" deleted successfully", nil))
}

func operatorNoun(opType domain.OperatorType) string {
	if opType == domain.OperatorTypeAdmin {
		return "Admin"
	}
	return "Operator"
}

func operatorInput(req dto.OperatorRequest) service.OperatorInput {
	return service.OperatorInput{
		Name:       req.Name,
		Login:      req.Login,
		Password:   req.Password,
		City:       req.City,
		SipAddress: req.SipAddress,
		StatusWork: req.StatusWork,
		Note:       req.Note,
	}
}
