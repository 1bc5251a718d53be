package model

import (
	"slices"
	"time"
)

// Team is a user's default membership group. The owner is always a member.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Team) HasMember(email string) bool {
	return slices.Contains(t.Members, email)
}
