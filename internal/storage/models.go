package storage

import "time"

// ContactMessage is a message submitted through the contact form.
//
// swagger:model ContactMessage
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is a known identity. The only one today is the site admin.
type User struct {
	ID          string
	DisplayName string
	LastLoginAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Session is a server-side session keyed by the cookie value.
type Session struct {
	ID              string
	UserID          string
	IsAuthenticated bool
	ExpiresAt       time.Time
}
