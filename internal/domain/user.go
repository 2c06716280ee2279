package domain

import "time"

// User owns a calendar. Users are referenced by the sync engine but never
// mutated by it.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser holds the fields a caller supplies when creating a user.
type NewUser struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email,max=320"`
}
