package repo

import (
	"context"
	"database/sql"
	"time"

	"feast-checkout/internal/domain"

	"github.com/google/uuid"
)

// OtpRepo stores pending email verification codes. Issuance is
// delete-by-email then insert, deliberately without a wrapping transaction:
// two concurrent issuances for the same address race and the last insert
// wins, which is the code the customer most recently asked for.
type OtpRepo interface {
	DeleteByEmail(ctx context.Context, email string) error
	Create(ctx context.Context, rec *domain.OtpRecord) error
	FindActiveByEmail(ctx context.Context, email string) (*domain.OtpRecord, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type otpRepo struct {
	db *sql.DB
}

func NewOtpRepo(db *sql.DB) OtpRepo {
	return &otpRepo{db: db}
}

func (r *otpRepo) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM email_otps WHERE email = $1`, email)
	return err
}

func (r *otpRepo) Create(ctx context.Context, rec *domain.OtpRecord) error {
	query := `
		INSERT INTO email_otps (id, email, otp_code, expires_at, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Email, rec.Code, rec.ExpiresAt, rec.Verified, rec.CreatedAt,
	)
	return err
}

func (r *otpRepo) FindActiveByEmail(ctx context.Context, email string) (*domain.OtpRecord, error) {
	query := `
		SELECT id, email, otp_code, expires_at, verified, created_at
		FROM email_otps
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var rec domain.OtpRecord
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&rec.ID, &rec.Email, &rec.Code, &rec.ExpiresAt, &rec.Verified, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *otpRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE email_otps SET verified = true WHERE id = $1`, id)
	return err
}

func (r *otpRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM email_otps WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
