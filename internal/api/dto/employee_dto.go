package dto

import (
	"time"

	"github.com/spec-kit/users-service/internal/domain"
)

// EmployeeListQuery filters GET /employees.
type EmployeeListQuery struct {
	ListQuery
	Role *string
	City *string
}

// EmployeeResponse is one row of the merged roster.
type EmployeeResponse struct {
	ID         int64     `json:"id"`
	Role       string    `json:"role"`
	Name       string    `json:"name"`
	Login      *string   `json:"login"`
	Cities     []string  `json:"cities"`
	StatusWork *string   `json:"statusWork,omitempty"`
	Note       *string   `json:"note"`
	DateCreate time.Time `json:"dateCreate"`
}

// NewEmployeeResponse maps a domain employee.
func NewEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Role:       e.Role.String(),
		Name:       e.Name,
		Login:      e.Login,
		Cities:     citiesOrEmpty(e.Cities),
		StatusWork: e.StatusWork,
		Note:       e.Note,
		DateCreate: e.DateCreate,
	}
}

// NewEmployeeResponses maps a list of employees.
func NewEmployeeResponses(employees []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, NewEmployeeResponse(&employees[i]))
	}
	return out
}

// ProfileResponse is the caller's own profile.
type ProfileResponse struct {
	ID         int64     `json:"id"`
	Role       string    `json:"role"`
	Name       string    `json:"name"`
	Login      string    `json:"login"`
	Cities     []string  `json:"cities,omitempty"`
	City       *string   `json:"city,omitempty"`
	StatusWork *string   `json:"statusWork,omitempty"`
	Note       *string   `json:"note"`
	TgID       *string   `json:"tgId,omitempty"`
	ChatID     *string   `json:"chatId,omitempty"`
	SipAddress *string   `json:"sipAddress,omitempty"`
	DateCreate time.Time `json:"dateCreate"`
}

// NewProfileResponse maps a domain profile.
func NewProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:         p.ID,
		Role:       p.Role.String(),
		Name:       p.Name,
		Login:      p.Login,
		Cities:     p.Cities,
		City:       p.City,
		StatusWork: p.StatusWork,
		Note:       p.Note,
		TgID:       p.TgID,
		ChatID:     p.ChatID,
		SipAddress: p.SipAddress,
		DateCreate: p.DateCreate,
	}
}
