package account

import (
	"github.com/amirasaad/finhub/pkg/domain/account"
)

// Response is an account as the frontend reads it. Keys follow the
// frontend schema, which is camelCase for this resource only.
type Response struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Balance   float64 `json:"balance"`
	IsDefault bool    `json:"isDefault"`
}

func ToResponse(a *account.Account) *Response {
	if a == nil {
		return nil
	}
	return &Response{
		ID:        a.ID.String(),
		Name:      a.Name,
		Type:      string(a.Kind),
		Balance:   a.Balance.InexactFloat64(),
		IsDefault: a.IsDefault,
	}
}

func ToResponses(accounts []*account.Account) []*Response {
	out := make([]*Response, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, ToResponse(a))
	}
	return out
}
