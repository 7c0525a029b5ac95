package entity

import (
	"time"
)

// TokenPurposeAuth tags what a stored token authorizes. Only "auth" is issued.
const TokenPurposeAuth = "auth"

// AuthToken is one entry in a user's token list. A user holds one entry
// per live session/device; logout removes exactly the presented token.
type AuthToken struct {
	Purpose string `json:"purpose"`
	Token   string `json:"token"`
}

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in PasswordHash; the token list
// is an ordered sequence persisted with the user row and is the source
// of truth for revocation.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Tokens       []AuthToken `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
