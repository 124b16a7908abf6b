package dto

import (
	"time"

	"knowvalue.app/server/internal/model"
)

// CreateAnswerRequest binds from JSON or from multipart form fields.
type CreateAnswerRequest struct {
	QuestionID     string `json:"questionId" form:"questionId" binding:"required"`
	Pitch          string `json:"pitch" form:"pitch" binding:"required"`
	Content        string `json:"content" form:"content"`
	ProposedAmount int32  `json:"proposedAmount" form:"proposedAmount"`
}

type NegotiationResponse struct {
	ID             int64                   `json:"id,string"`
	ProposedAmount int32                   `json:"proposedAmount"`
	Status         model.NegotiationStatus `json:"status"`
}

type AnswerResponse struct {
	ID          int64                `json:"id,string"`
	QuestionID  int64                `json:"questionId,string"`
	AuthorID    int64                `json:"authorId,string"`
	AuthorName  string               `json:"authorName,omitempty"`
	Pitch       string               `json:"pitch"`
	Content     *string              `json:"content,omitempty"`
	Images      []ImageResponse      `json:"images,omitempty"`
	Negotiation *NegotiationResponse `json:"negotiation,omitempty"`
	LikeCount   int32                `json:"likeCount"`
	Revealed    bool                 `json:"revealed"`
	Read        bool                 `json:"read"`
	LikedByMe   bool                 `json:"likedByMe"`
	IsBest      bool                 `json:"isBest"`
	CreatedAt   time.Time            `json:"createdAt"`
}

func ToAnswerResponse(a *model.AnswerDetail) AnswerResponse {
	resp := AnswerResponse{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		AuthorID:   a.AuthorID,
		AuthorName: a.AuthorName,
		Pitch:      a.Pitch,
		Content:    a.Content,
		LikeCount:  a.LikeCount,
		CreatedAt:  a.CreatedAt,
	}
	if a.Negotiation != nil {
		resp.Negotiation = &NegotiationResponse{
			ID:             a.Negotiation.ID,
			ProposedAmount: a.Negotiation.ProposedAmount,
			Status:         a.Negotiation.Status,
		}
	}
	for _, img := range a.Images {
		resp.Images = append(resp.Images, ImageResponse{URL: img.URL, SortOrder: img.SortOrder})
	}
	return resp
}

type AnswerSummaryResponse struct {
	ID             int64                    `json:"id,string"`
	QuestionID     int64                    `json:"questionId,string"`
	QuestionTitle  string                   `json:"questionTitle"`
	Pitch          string                   `json:"pitch"`
	ProposedAmount *int32                   `json:"proposedAmount,omitempty"`
	Status         *model.NegotiationStatus `json:"status,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
}

func ToAnswerSummaryResponses(answers []model.AnswerSummary) []AnswerSummaryResponse {
	out := make([]AnswerSummaryResponse, len(answers))
	for i, a := range answers {
		out[i] = AnswerSummaryResponse{
			ID:             a.ID,
			QuestionID:     a.QuestionID,
			QuestionTitle:  a.QuestionTitle,
			Pitch:          a.Pitch,
			ProposedAmount: a.ProposedAmount,
			Status:         a.Status,
			CreatedAt:      a.CreatedAt,
		}
	}
	return out
}

type LikeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int32 `json:"likeCount"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID         int64     `json:"id,string"`
	AnswerID   int64     `json:"answerId,string"`
	AuthorID   int64     `json:"authorId,string"`
	AuthorName string    `json:"authorName,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ToCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		AnswerID:   c.AnswerID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}

func ToCommentResponses(comments []model.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i := range comments {
		out[i] = ToCommentResponse(&comments[i])
	}
	return out
}

type NegotiationActionRequest struct {
	NegotiationID string `json:"negotiationId" binding:"required"`
}

type BestAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	AnswerID   string `json:"answerId" binding:"required"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// AnswerReadResponse reports whether the read was newly recorded.
type AnswerReadResponse struct {
	Marked bool `json:"marked"`
}
