package domain

import (
	"time"

	"github.com/google/uuid"
)

// OtpRecord is a pending email verification code. At most one record per
// email is active at a time: issuing a new code deletes every prior row for
// that address. Rows are not deleted on read; expiry is checked by consumers
// and stale rows are swept by a background worker.
type OtpRecord struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"otp_code"`
	ExpiresAt time.Time `json:"expires_at"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the record is stale at the given instant.
func (r *OtpRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
