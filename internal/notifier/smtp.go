package notifier

import (
	"context"

	"gopkg.in/gomail.v2"
)

type smtpNotifier struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP builds a Notifier that delivers over SMTP. Each Send dials a fresh
// connection; volume here is one mail per checkout, not worth keeping a
// connection warm.
func NewSMTP(host string, port int, username, password, from string) Notifier {
	return &smtpNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (n *smtpNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	return n.dialer.DialAndSend(m)
}
