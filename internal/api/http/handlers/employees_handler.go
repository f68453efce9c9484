package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/users-service/internal/api/dto"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/service"
)

// EmployeesHandler exposes /employees endpoints.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employees *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

// List handles GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx, principal *domain.Principal) error {
	query, err := listQuery(c)
	if err != nil {
		return err
	}
	employees, err := h.employees.List(c.UserContext(), principal, service.EmployeeListFilters{
		Role:   optionalQuery(c, "role"),
		City:   optionalQuery(c, "city"),
		Search: query.Search,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewEmployeeResponses(employees)))
}

// Get handles GET /employees/:id?role=master|director.
func (h *EmployeesHandler) Get(c *fiber.Ctx, _ *domain.Principal) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	employee, err := h.employees.Get(c.UserContext(), optionalQuery(c, "role"), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewEmployeeResponse(employee)))
}

// Create handles POST /employees; employees created here are masters.
func (h *EmployeesHandler) Create(c *fiber.Ctx, _ *domain.Principal) error {
	var req dto.MasterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	master, err := h.employees.Create(c.UserContext(), masterInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Done("Employee created successfully", dto.NewMasterResponse(master)))
}

// Update handles PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx, _ *domain.Principal) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.MasterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	master, err := h.employees.Update(c.UserContext(), id, masterInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.Done("Employee updated successfully", dto.NewMasterResponse(master)))
}
