package domain

// User is the authenticated demo user. There is exactly one.
type User struct {
	Email string `json:"email"`
}
