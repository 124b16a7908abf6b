package model

import "time"

type Question struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	CategoryID   *int64    `json:"category_id,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	RewardAmount int32     `json:"reward_amount"`
	IsPaid       bool      `json:"is_paid"`
	IsClosed     bool      `json:"is_closed"`
	BestAnswerID *int64    `json:"best_answer_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VisibleTo reports whether userID may see the question. Unpaid questions are private to their owner.
func (q *Question) VisibleTo(userID int64) bool {
	return q.IsPaid || q.OwnerID == userID
}

// AcceptsBestAnswer is false once the question is closed or a best answer is recorded.
func (q *Question) AcceptsBestAnswer() bool {
	return !q.IsClosed && q.BestAnswerID == nil
}

type QuestionImage struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	ObjectKey  string `json:"object_key"`
	URL        string `json:"url"`
	SortOrder  int32  `json:"sort_order"`
}
