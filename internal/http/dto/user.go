package dto

import (
	"time"

	"knowvalue.app/server/internal/model"
)

type UserResponse struct {
	ID             int64      `json:"id,string"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	AvatarURL      *string    `json:"avatarUrl,omitempty"`
	ConsentAt      *time.Time `json:"consentAt,omitempty"`
	ConsentVersion *string    `json:"consentVersion,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		AvatarURL:      u.AvatarURL,
		ConsentAt:      u.ConsentAt,
		ConsentVersion: u.ConsentVersion,
		CreatedAt:      u.CreatedAt,
	}
}

type ConsentRequest struct {
	Version string `json:"version" binding:"required"`
}

type PurchaseResponse struct {
	ID            int64     `json:"id,string"`
	QuestionID    int64     `json:"questionId,string"`
	Amount        int32     `json:"amount"`
	NegotiationID *int64    `json:"negotiationId,string,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func ToPurchaseResponses(purchases []model.Purchase) []PurchaseResponse {
	out := make([]PurchaseResponse, len(purchases))
	for i, p := range purchases {
		out[i] = PurchaseResponse{
			ID:            p.ID,
			QuestionID:    p.QuestionID,
			Amount:        p.Amount,
			NegotiationID: p.NegotiationID,
			CreatedAt:     p.CreatedAt,
		}
	}
	return out
}

// PageQuery is the limit/offset pair accepted by list endpoints.
type PageQuery struct {
	Limit  int32 `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int32 `form:"offset" binding:"omitempty,min=0"`
}
