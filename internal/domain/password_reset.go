package domain

import (
	"time"

	"github.com/google/uuid"
)

// PasswordReset is a pending single-use reset credential. Only the SHA-256
// digest of the emailed token is stored; a row is dead once Consumed is set or
// ExpiresAt has passed.
type PasswordReset struct {
	ID        int64     `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	TokenHash string    `db:"token_hash" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Consumed  bool      `db:"consumed" json:"consumed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (p *PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
