package dto

import (
	"time"

	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/service"
)

// CreateQuestionRequest binds from JSON or from multipart form fields.
type CreateQuestionRequest struct {
	Title        string `json:"title" form:"title" binding:"required,max=200"`
	Content      string `json:"content" form:"content" binding:"required"`
	RewardAmount int32  `json:"rewardAmount" form:"rewardAmount" binding:"required"`
	CategoryID   string `json:"categoryId" form:"categoryId"`
}

type ListQuestionsQuery struct {
	PageQuery
	CategoryID string `form:"categoryId"`
}

type CategoryResponse struct {
	ID   int64  `json:"id,string"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func ToCategoryResponses(categories []model.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryResponse{ID: c.ID, Slug: c.Slug, Name: c.Name}
	}
	return out
}

type ImageResponse struct {
	URL       string `json:"url"`
	SortOrder int32  `json:"sortOrder"`
}

type QuestionResponse struct {
	ID           int64     `json:"id,string"`
	OwnerID      int64     `json:"ownerId,string"`
	CategoryID   *int64    `json:"categoryId,string,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	RewardAmount int32     `json:"rewardAmount"`
	IsPaid       bool      `json:"isPaid"`
	IsClosed     bool      `json:"isClosed"`
	BestAnswerID *int64    `json:"bestAnswerId,string,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ToQuestionResponse(q *model.Question) QuestionResponse {
	return QuestionResponse{
		ID:           q.ID,
		OwnerID:      q.OwnerID,
		CategoryID:   q.CategoryID,
		Title:        q.Title,
		Content:      q.Content,
		RewardAmount: q.RewardAmount,
		IsPaid:       q.IsPaid,
		IsClosed:     q.IsClosed,
		BestAnswerID: q.BestAnswerID,
		CreatedAt:    q.CreatedAt,
	}
}

func ToQuestionResponses(questions []model.Question) []QuestionResponse {
	out := make([]QuestionResponse, len(questions))
	for i := range questions {
		out[i] = ToQuestionResponse(&questions[i])
	}
	return out
}

type QuestionDetailResponse struct {
	QuestionResponse
	Category *CategoryResponse `json:"category,omitempty"`
	Images   []ImageResponse   `json:"images"`
	Answers  []AnswerResponse  `json:"answers"`
	IsOwner  bool              `json:"isOwner"`
}

func ToQuestionDetailResponse(d *service.QuestionDetail) QuestionDetailResponse {
	resp := QuestionDetailResponse{
		QuestionResponse: ToQuestionResponse(&d.Question),
		Images:           make([]ImageResponse, len(d.Images)),
		Answers:          make([]AnswerResponse, len(d.Answers)),
		IsOwner:          d.IsOwner,
	}
	if d.Category != nil {
		resp.Category = &CategoryResponse{ID: d.Category.ID, Slug: d.Category.Slug, Name: d.Category.Name}
	}
	for i, img := range d.Images {
		resp.Images[i] = ImageResponse{URL: img.URL, SortOrder: img.SortOrder}
	}
	for i := range d.Answers {
		view := &d.Answers[i]
		a := ToAnswerResponse(&view.AnswerDetail)
		a.Revealed = view.Revealed
		if !view.Revealed {
			a.Content, a.Images = nil, nil
		}
		a.Read = view.Read
		a.LikedByMe = view.LikedByMe
		a.IsBest = d.Question.BestAnswerID != nil && *d.Question.BestAnswerID == view.ID
		resp.Answers[i] = a
	}
	return resp
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

type MarkReadResponse struct {
	Marked int64 `json:"marked"`
}
