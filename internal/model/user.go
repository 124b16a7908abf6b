package model

import "time"

type User struct {
	ID             int64      `json:"id"`
	WorkOSID       *string    `json:"-"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	AvatarURL      *string    `json:"avatar_url,omitempty"`
	ConsentAt      *time.Time `json:"consent_at,omitempty"`
	ConsentVersion *string    `json:"consent_version,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type Session struct {
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
}

type Category struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	SortOrder int32  `json:"sort_order"`
}
