package model

import "time"

// Page is a documentation page attached to a project. Content is raw
// markdown or HTML; rendering is the client's concern.
type Page struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Project   string    `json:"project"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
