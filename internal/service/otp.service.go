package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"feast-checkout/internal/domain"
	"feast-checkout/internal/notifier"
	"feast-checkout/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OtpService interface {
	Issue(ctx context.Context, email, customerName string) (*domain.OtpRecord, error)
	Verify(ctx context.Context, email, code string) error
}

type otpService struct {
	otps     repo.OtpRepo
	notifier notifier.Notifier
	ttl      time.Duration
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewOtpService(
	otps repo.OtpRepo,
	n notifier.Notifier,
	ttl time.Duration,
	log *zap.SugaredLogger,
) OtpService {
	return &otpService{
		otps:     otps,
		notifier: n,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// Issue creates a fresh code for the email, replacing any prior one.
// Persistence failure aborts before any email goes out; a failed send is
// surfaced to the caller because code delivery is the whole point of this
// endpoint, even though the record is already stored.
func (s *otpService) Issue(ctx context.Context, email, customerName string) (*domain.OtpRecord, error) {
	email = strings.TrimSpace(email)
	customerName = strings.TrimSpace(customerName)
	if email == "" || customerName == "" {
		return nil, domain.ErrMissingFields
	}

	issuedAt := s.now()
	rec := &domain.OtpRecord{
		ID:        uuid.New(),
		Email:     email,
		Code:      generateCode(),
		ExpiresAt: issuedAt.Add(s.ttl),
		Verified:  false,
		CreatedAt: issuedAt,
	}

	// One active code per email: wipe predecessors before inserting. The two
	// statements are intentionally not wrapped in a transaction; concurrent
	// requests race and the last insert wins, which is the code the customer
	// most recently asked for.
	if err := s.otps.DeleteByEmail(ctx, email); err != nil {
		s.log.Errorw("otp cleanup failed", "error", err, "email", email)
		return nil, domain.ErrOtpPersistence
	}
	if err := s.otps.Create(ctx, rec); err != nil {
		s.log.Errorw("otp insert failed", "error", err, "email", email)
		return nil, domain.ErrOtpPersistence
	}

	subject, body := renderOtpMail(customerName, rec.Code, s.ttl)
	if err := s.notifier.Send(ctx, email, subject, body); err != nil {
		s.log.Errorw("otp email failed", "error", err, "email", email)
		return nil, domain.ErrNotificationFailed
	}

	return rec, nil
}

// Verify consumes the active code for the email. A code superseded by a
// newer issuance no longer has a row and fails as not found.
func (s *otpService) Verify(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return domain.ErrMissingFields
	}

	rec, err := s.otps.FindActiveByEmail(ctx, email)
	if err != nil {
		s.log.Errorw("otp lookup failed", "error", err, "email", email)
		return domain.ErrOtpPersistence
	}
	if rec == nil {
		return domain.ErrOtpNotFound
	}
	if rec.Expired(s.now()) {
		return domain.ErrOtpExpired
	}
	if rec.Code != code {
		return domain.ErrOtpMismatch
	}

	if err := s.otps.MarkVerified(ctx, rec.ID); err != nil {
		s.log.Errorw("otp verify update failed", "error", err, "email", email)
		return domain.ErrOtpPersistence
	}
	return nil
}

// generateCode returns a uniform 6-digit code. The range [100000, 999999]
// guarantees no leading zero, so the code survives any string/number
// round-trip intact.
func generateCode() string {
	return fmt.Sprintf("%d", rand.IntN(900000)+100000)
}

func renderOtpMail(customerName, code string, ttl time.Duration) (string, string) {
	subject := "Your verification code"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your verification code is:</p>"+
			"<p style=\"font-size:24px;letter-spacing:4px\"><b>%s</b></p>"+
			"<p>The code expires in %d minutes. If you did not request it, you can ignore this email.</p>",
		customerName, code, int(ttl.Minutes()))
	return subject, body
}
