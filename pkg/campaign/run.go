package campaign

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailblast/pkg/mailer"
	"github.com/dmitrymomot/mailblast/pkg/placeholder"
)

// Run executes one send pass: it validates the template, opens the transport
// session, sends one message per recipient in order, and returns a report
// covering every attempted recipient.
//
// Failure semantics follow three tiers:
//
//   - Template errors abort before any session is opened or message sent.
//   - Session errors (authentication, connection) abort the pass with zero
//     or partial deliveries; the error is returned alongside the report.
//   - Per-recipient delivery errors are recorded in the report and the loop
//     continues; they never fail the pass.
//
// The transport session is released on every exit path. Execution is strictly
// sequential: one message at a time on a single session, no reordering.
func Run(ctx context.Context, transport mailer.Transport, c Campaign, opts ...Option) (*Report, error) {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	report := &Report{PassID: uuid.New()}
	log := o.logger.With(slog.String("pass_id", report.PassID.String()))

	// Validate up front so a bad placeholder is caught before the first
	// send, not on whichever recipient happens to trigger it.
	if err := placeholder.Validate(c.Template.Subject); err != nil {
		return report, fmt.Errorf("subject template: %w", err)
	}
	if err := placeholder.Validate(c.Template.Body); err != nil {
		return report, fmt.Errorf("body template: %w", err)
	}

	total := len(c.Recipients)
	if total == 0 {
		return report, nil
	}

	if err := transport.Open(ctx); err != nil {
		return report, fmt.Errorf("open transport session: %w", err)
	}
	defer transport.Close() // session release on all exit paths

	report.Outcomes = make([]Outcome, 0, total)
	for i, rec := range c.Recipients {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		email, err := buildEmail(c, rec)
		if err != nil {
			// Render failures abort the remaining pass.
			return report, err
		}
		email.Tags = mailer.Tags{"pass": report.PassID.String()}

		report.Attempted++
		if err := transport.Send(ctx, email); err != nil {
			report.Outcomes = append(report.Outcomes, Outcome{Recipient: rec, Err: err})
			report.Failed++
			log.Warn("delivery failed",
				slog.String("email", rec.Email),
				slog.String("error", err.Error()),
			)
		} else {
			report.Outcomes = append(report.Outcomes, Outcome{Recipient: rec})
			report.Sent++
			log.Info("sent",
				slog.String("name", rec.Name),
				slog.String("email", rec.Email),
			)
		}

		if o.progress != nil {
			o.progress(i+1, total)
		}
	}

	log.Info("pass finished",
		slog.Int("attempted", report.Attempted),
		slog.Int("sent", report.Sent),
		slog.Int("failed", report.Failed),
	)

	return report, nil
}
