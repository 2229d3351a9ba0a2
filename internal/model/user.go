package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// User represents a registered account. Transactions are exclusively owned
// by one user and never shared.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AvatarURL returns a gravatar identicon URL derived from the user's email.
func (u User) AvatarURL(size int) string {
	digest := sha256.Sum256([]byte(strings.ToLower(u.Email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", digest, size)
}
