// Package mailer delivers verification emails over SMTP via shoutrrr.
package mailer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"

	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"

	"github.com/MEKSAAA/Anti-Fake/internal/pkg/config"
)

var ErrNotConfigured = errors.New("mail credentials not configured")

// Mailer sends plain-text mail using the configured SMTP account.
type Mailer struct {
	cfg config.MailConfig
}

// New creates a mailer from config. Credentials may be absent; Send
// reports ErrNotConfigured in that case rather than failing startup.
func New(cfg config.MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers a single message to one recipient.
func (m *Mailer) Send(to, subject, body string) error {
	if m.cfg.Username == "" || m.cfg.Password == "" {
		return ErrNotConfigured
	}

	smtpURL := fmt.Sprintf("smtp://%s:%s@%s:%d/?from=%s&to=%s&usetls=yes",
		url.QueryEscape(m.cfg.Username),
		url.QueryEscape(m.cfg.Password),
		m.cfg.Host,
		m.cfg.Port,
		url.QueryEscape(m.cfg.From),
		url.QueryEscape(to),
	)

	sender, err := shoutrrr.CreateSender(smtpURL)
	if err != nil {
		return fmt.Errorf("failed to create mail sender: %w", err)
	}
	sender.SetLogger(log.New(io.Discard, "", 0))

	params := stypes.Params{"subject": subject}
	for _, err := range sender.Send(body, &params) {
		if err != nil {
			return fmt.Errorf("failed to send mail: %w", err)
		}
	}
	return nil
}
