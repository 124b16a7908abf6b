package model

import "time"

type Answer struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"question_id"`
	AuthorID   int64     `json:"author_id"`
	Pitch      string    `json:"pitch"`
	Content    *string   `json:"content,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type AnswerImage struct {
	ID        int64  `json:"id"`
	AnswerID  int64  `json:"answer_id"`
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
	SortOrder int32  `json:"sort_order"`
}

// AnswerDetail is an answer as listed under its question, joined with its negotiation.
type AnswerDetail struct {
	Answer
	AuthorName  string
	Negotiation *Negotiation
	LikeCount   int32
	Images      []AnswerImage
}

// AnswerSummary is an answer as listed for its author.
type AnswerSummary struct {
	ID             int64
	QuestionID     int64
	QuestionTitle  string
	Pitch          string
	ProposedAmount *int32
	Status         *NegotiationStatus
	CreatedAt      time.Time
}

type Comment struct {
	ID         int64     `json:"id"`
	AnswerID   int64     `json:"answer_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
