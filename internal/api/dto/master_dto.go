package dto

import (
	"time"

	"github.com/spec-kit/users-service/internal/domain"
)

// MasterRequest is the create/update payload for masters.
type MasterRequest struct {
	Name       *string  `json:"name"`
	Login      *string  `json:"login"`
	Password   *string  `json:"password"`
	Phone      *string  `json:"phone"`
	Cities     []string `json:"cities"`
	StatusWork *string  `json:"statusWork"`
	Note       *string  `json:"note"`
}

// MasterDocumentsRequest updates document references.
type MasterDocumentsRequest struct {
	ContractDoc *string `json:"contractDoc"`
	PassportDoc *string `json:"passportDoc"`
}

// MasterListQuery filters GET /masters.
type MasterListQuery struct {
	ListQuery
	City       *string
	StatusWork *string
}

// MasterResponse is the public view of a master. Password hashes are never exposed.
type MasterResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Login       *string   `json:"login"`
	Phone       *string   `json:"phone"`
	Cities      []string  `json:"cities"`
	StatusWork  string    `json:"statusWork"`
	Note        *string   `json:"note"`
	ContractDoc *string   `json:"contractDoc"`
	PassportDoc *string   `json:"passportDoc"`
	DateCreate  time.Time `json:"dateCreate"`
}

// NewMasterResponse maps a domain master.
func NewMasterResponse(m *domain.Master) MasterResponse {
	return MasterResponse{
		ID:          m.ID,
		Name:        m.Name,
		Login:       m.Login,
		Phone:       m.Phone,
		Cities:      citiesOrEmpty(m.Cities),
		StatusWork:  m.StatusWork,
		Note:        m.Note,
		ContractDoc: m.ContractDoc,
		PassportDoc: m.PassportDoc,
		DateCreate:  m.DateCreate,
	}
}

// NewMasterResponses maps a list of masters.
func NewMasterResponses(masters []domain.Master) []MasterResponse {
	out := make([]MasterResponse, 0, len(masters))
	for i := range masters {
		out = append(out, NewMasterResponse(&masters[i]))
	}
	return out
}

func citiesOrEmpty(cities []string) []string {
	if cities == nil {
		return []string{}
	}
	return cities
}
