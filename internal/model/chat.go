package model

import "time"

// ChatMessage is a single message in a project's chat, ordered by CreatedAt.
type ChatMessage struct {
	ID        string    `json:"id"`
	Project   string    `json:"project"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
