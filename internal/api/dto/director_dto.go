package dto

import (
	"time"

	"github.com/spec-kit/users-service/internal/domain"
)

// DirectorRequest is the create/update payload for directors.
type DirectorRequest struct {
	Name        *string  `json:"name"`
	Login       *string  `json:"login"`
	Password    *string  `json:"password"`
	Cities      []string `json:"cities"`
	TgID        *string  `json:"tgId"`
	Note        *string  `json:"note"`
	ContractDoc *string  `json:"contractDoc"`
	PassportDoc *string  `json:"passportDoc"`
}

// DirectorResponse is the public view of a director.
type DirectorResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Login       string    `json:"login"`
	Cities      []string  `json:"cities"`
	TgID        *string   `json:"tgId"`
	Note        *string   `json:"note"`
	ContractDoc *string   `json:"contractDoc"`
	PassportDoc *string   `json:"passportDoc"`
	DateCreate  time.Time `json:"dateCreate"`
}

// NewDirectorResponse maps a domain director.
func NewDirectorResponse(d *domain.Director) DirectorResponse {
	return DirectorResponse{
		ID:          d.ID,
		Name:        d.Name,
		Login:       d.Login,
		Cities:      citiesOrEmpty(d.Cities),
		TgID:        d.TgID,
		Note:        d.Note,
		ContractDoc: d.ContractDoc,
		PassportDoc: d.PassportDoc,
		DateCreate:  d.DateCreate,
	}
}

// NewDirectorResponses maps a list of directors.
func NewDirectorResponses(directors []domain.Director) []DirectorResponse {
	out := make([]DirectorResponse, 0, len(directors))
	for i := range directors {
		out = append(out, NewDirectorResponse(&directors[i]))
	}
	return out
}
