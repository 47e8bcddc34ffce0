// Package smtp implements mailer.Transport over authenticated SMTP
// submission with mandatory STARTTLS.
package smtp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/textproto"

	gomail "github.com/wneessen/go-mail"

	"github.com/dmitrymomot/mailblast/pkg/mailer"
)

// Sender implements mailer.Transport using the go-mail SMTP client. The
// session opened by Open is reused for every Send until Close, so a batch of
// messages goes out over a single authenticated connection.
//
// Sender is not safe for concurrent use; the session is owned by one caller
// for its whole lifetime.
type Sender struct {
	client *gomail.Client
	config Config
	open   bool
}

// New creates a new SMTP sender. The connection is not established until Open.
func New(cfg Config) (*Sender, error) {
	username := cfg.Username
	if username == "" {
		username = cfg.SenderEmail
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(username),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp: create client: %w", err)
	}

	return &Sender{client: client, config: cfg}, nil
}

// Open connects to the server, upgrades the connection to TLS, and
// authenticates. Rejected credentials surface as mailer.ErrAuthFailed; any
// other failure as mailer.ErrConnectionFailed.
func (s *Sender) Open(ctx context.Context) error {
	if err := s.client.DialWithContext(ctx); err != nil {
		return errors.Join(classify(err), err)
	}
	s.open = true
	return nil
}

// Send implements mailer.Sender. With an open session the message is
// submitted on the existing connection; otherwise a one-off
// dial-send-close cycle is used.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	msg, err := s.toMsg(email)
	if err != nil {
		return errors.Join(mailer.ErrSendFailed, err)
	}

	if !s.open {
		if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
			return errors.Join(mailer.ErrSendFailed, err)
		}
		return nil
	}

	if err := s.client.Send(msg); err != nil {
		return errors.Join(mailer.ErrSendFailed, err)
	}
	return nil
}

// Close releases the connection. Safe to call when Open never succeeded.
func (s *Sender) Close() error {
	if !s.open {
		return nil
	}
	s.open = false
	return s.client.Close()
}

// toMsg converts the provider-agnostic email into a go-mail message. The
// resulting MIME structure is multipart/related wrapping a
// multipart/alternative (plain + HTML) plus any inline parts, so clients pick
// the best-supported representation and resolve cid references.
func (s *Sender) toMsg(email *mailer.Email) (*gomail.Msg, error) {
	msg := gomail.NewMsg()

	from := email.From
	if from == "" {
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}
	if len(email.CC) > 0 {
		if err := msg.Cc(email.CC...); err != nil {
			return nil, fmt.Errorf("invalid cc address: %w", err)
		}
	}
	if len(email.BCC) > 0 {
		if err := msg.Bcc(email.BCC...); err != nil {
			return nil, fmt.Errorf("invalid bcc address: %w", err)
		}
	}
	if email.ReplyTo != "" {
		if err := msg.ReplyTo(email.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}

	msg.Subject(email.Subject)
	for k, v := range email.Headers {
		msg.SetGenHeader(gomail.Header(k), v)
	}

	switch {
	case email.Text != "" && email.HTML != "":
		msg.SetBodyString(gomail.TypeTextPlain, email.Text)
		msg.AddAlternativeString(gomail.TypeTextHTML, email.HTML)
	case email.HTML != "":
		msg.SetBodyString(gomail.TypeTextHTML, email.HTML)
	default:
		msg.SetBodyString(gomail.TypeTextPlain, email.Text)
	}

	for _, a := range email.Attachments {
		opts := []gomail.FileOption{gomail.WithFileName(a.Filename)}
		if a.ContentType != "" {
			opts = append(opts, gomail.WithFileContentType(gomail.ContentType(a.ContentType)))
		}

		if a.Inline() {
			opts = append(opts, gomail.WithFileContentID(a.ContentID))
			if err := msg.EmbedReader(a.Filename, bytes.NewReader(a.Content), opts...); err != nil {
				return nil, fmt.Errorf("embed %s: %w", a.Filename, err)
			}
			continue
		}
		if err := msg.AttachReader(a.Filename, bytes.NewReader(a.Content), opts...); err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.Filename, err)
		}
	}

	return msg, nil
}

// classify maps a session-setup failure to the package sentinel the caller
// should branch on. SMTP replies 530/534/535 cover the auth rejection codes.
func classify(err error) error {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535:
			return mailer.ErrAuthFailed
		}
	}
	return mailer.ErrConnectionFailed
}
