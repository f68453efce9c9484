package dto

import (
	"time"

	"github.com/spec-kit/users-service/internal/domain"
)

// OperatorRequest is the create/update payload for call-centre staff.
// Type may also be passed as the "type" query parameter.
type OperatorRequest struct {
	Type       string  `json:"type"`
	Name       *string `json:"name"`
	Login      *string `json:"login"`
	Password   *string `json:"password"`
	City       *string `json:"city"`
	SipAddress *string `json:"sipAddress"`
	StatusWork *string `json:"statusWork"`
	Note       *string `json:"note"`
}

// OperatorResponse is the public view of an admin or operator.
type OperatorResponse struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Login      string    `json:"login"`
	City       *string   `json:"city"`
	SipAddress *string   `json:"sipAddress"`
	StatusWork string    `json:"statusWork"`
	Note       *string   `json:"note"`
	DateCreate time.Time `json:"dateCreate"`
}

// OperatorListingResponse is returned when both tables are listed.
type OperatorListingResponse struct {
	Admins    []OperatorResponse `json:"admins"`
	Operators []OperatorResponse `json:"operators"`
}

// NewOperatorResponse maps a domain operator.
func NewOperatorResponse(o *domain.Operator) OperatorResponse {
	return OperatorResponse{
		ID:         o.ID,
		Type:       string(o.Type),
		Name:       o.Name,
		Login:      o.Login,
		City:       o.City,
		SipAddress: o.SipAddress,
		StatusWork: o.StatusWork,
		Note:       o.Note,
		DateCreate: o.DateCreate,
	}
}

// NewOperatorResponses maps a list of operators.
func NewOperatorResponses(operators []domain.Operator) []OperatorResponse {
	out := make([]OperatorResponse, 0, len(operators))
	for i := range operators {
		out = append(out, NewOperatorResponse(&operators[i]))
	}
	return out
}
