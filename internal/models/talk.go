package models

import (
	"time"
)

type Talk struct {
	ID            int        `json:"id"`
	PropertyID    int        `json:"property_id"`
	UserID        int        `json:"user_id"`
	OwnerID       int        `json:"owner_id"`
	PropertyName  string     `json:"property_name,omitempty"`
	LastMessage   *string    `json:"last_message,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Message struct {
	ID        int       `json:"id"`
	TalkID    int       `json:"talk_id"`
	SenderID  int       `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateMessageRequest struct {
	TalkID     int    `json:"talk_id,omitempty"`
	PropertyID int    `json:"property_id,omitempty"`
	Body       string `json:"body"`
}
