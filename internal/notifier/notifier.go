package notifier

import "context"

// Notifier sends a rendered message to one recipient. Order confirmation
// treats it as fire-and-forget; OTP issuance treats a send failure as a
// caller-visible error. That asymmetry lives in the services, not here.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Nop discards every message. Used in tests and when no SMTP host is
// configured (local development).
type Nop struct{}

func NewNop() Notifier {
	return Nop{}
}

func (Nop) Send(ctx context.Context, to, subject, body string) error {
	return nil
}
