// Package stdout implements a mailer.Transport that prints messages to
// standard output instead of sending them. Use it for dry runs and tests.
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrymomot/mailblast/pkg/mailer"
)

// Sender prints email messages in a human-readable format.
type Sender struct {
	writer io.Writer
}

// New creates a new stdout Sender that writes to os.Stdout.
func New() *Sender {
	return &Sender{writer: os.Stdout}
}

// NewWithWriter creates a new stdout Sender that writes to the given writer.
// This is useful for testing.
func NewWithWriter(w io.Writer) *Sender {
	return &Sender{writer: w}
}

// Open implements mailer.Transport.
func (s *Sender) Open(context.Context) error { return nil }

// Close implements mailer.Transport.
func (s *Sender) Close() error { return nil }

// Send prints the message and always succeeds.
func (s *Sender) Send(_ context.Context, email *mailer.Email) error {
	var b strings.Builder

	b.WriteString("========================================\n")
	if email.From != "" {
		fmt.Fprintf(&b, "From: %s\n", email.From)
	}
	fmt.Fprintf(&b, "To: %s\n", strings.Join(email.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\n", email.Subject)

	body := email.Text
	if body == "" {
		body = email.HTML
	}
	b.WriteString("Body:\n")
	b.WriteString(body + "\n")

	if len(email.Attachments) > 0 {
		names := make([]string, 0, len(email.Attachments))
		for _, a := range email.Attachments {
			label := fmt.Sprintf("%s (%d B)", a.Filename, len(a.Content))
			if a.Inline() {
				label += " cid:" + a.ContentID
			}
			names = append(names, label)
		}
		fmt.Fprintf(&b, "Attachments: %s\n", strings.Join(names, ", "))
	}

	b.WriteString("========================================\n")

	_, _ = fmt.Fprint(s.writer, b.String())
	return nil
}
