package domain

import "time"

// User is the principal expenses are scoped to. The password credential is
// opaque to the rest of the application.
type User struct {
	ID             string
	Email          string
	Username       string
	HashedPassword string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
