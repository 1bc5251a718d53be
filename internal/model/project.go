package model

import (
	"slices"
	"time"
)

// Project is a collaboration workspace owning tasks, chat messages and pages.
// The owner email is always present in Members.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Members     []string  `json:"members"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Project) HasMember(email string) bool {
	return slices.Contains(p.Members, email)
}
