// Package mailer defines the email message model and the provider contract
// used by the sending pipeline.
//
// The package separates message preparation from delivery: callers build an
// Email and hand it to a Sender. Providers that keep an authenticated
// connection alive across messages implement Transport, which adds an
// explicit Open/Close session lifecycle around Send.
//
// # Providers
//
// Three providers ship with this module:
//
//   - smtp: authenticated SMTP submission with mandatory STARTTLS
//   - resend: the Resend HTTP API
//   - stdout: a dry-run provider that prints messages instead of sending
//
// Implement the Sender (or Transport) interface to add another:
//
//	type MySender struct{}
//
//	func (s *MySender) Send(ctx context.Context, email *mailer.Email) error {
//		// deliver via your provider's API
//		return nil
//	}
//
// # Errors
//
// Providers wrap the package sentinels so callers can branch with errors.Is:
//
//   - ErrAuthFailed: credentials rejected during session setup
//   - ErrConnectionFailed: session could not be established or was lost
//   - ErrSendFailed: delivery of a single message failed
package mailer
