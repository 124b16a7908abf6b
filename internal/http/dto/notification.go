package dto

import (
	"time"

	"knowvalue.app/server/internal/model"
)

type NotificationResponse struct {
	ID        int64                  `json:"id,string"`
	Type      model.NotificationType `json:"type"`
	Message   string                 `json:"message"`
	Link      *string                `json:"link,omitempty"`
	IsRead    bool                   `json:"isRead"`
	CreatedAt time.Time              `json:"createdAt"`
}

func ToNotificationResponses(items []model.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(items))
	for i := range items {
		n := &items[i]
		out[i] = NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			Link:      n.Link,
			IsRead:    n.IsRead(),
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}

type CountResponse struct {
	Count int32 `json:"count"`
}

type UnreadCountResponse struct {
	UnreadAnswers       int32 `json:"unreadAnswers"`
	UnreadNotifications int32 `json:"unreadNotifications"`
	Total               int32 `json:"total"`
}

func ToUnreadCountResponse(c model.UnreadCounts) UnreadCountResponse {
	return UnreadCountResponse{
		UnreadAnswers:       c.UnreadAnswers,
		UnreadNotifications: c.UnreadNotifications,
		Total:               c.Total(),
	}
}
