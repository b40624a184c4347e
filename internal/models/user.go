package models

import "time"

// User is a registered account. PasswordHash and RefreshToken never leave
// the process in API responses.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"` // stored lowercased
	Name         string    `json:"name"`
	Number       string    `json:"number,omitempty"` // contact number
	PasswordHash string    `json:"-"`
	RefreshToken string    `json:"-"` // single active session; overwritten on login
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the owner projection embedded in list-all responses.
type PublicUser struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Number string `json:"number,omitempty"`
}

// Public strips credential fields down to the embeddable projection.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Number: u.Number}
}
