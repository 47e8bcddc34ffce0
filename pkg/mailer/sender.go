package mailer

import "context"

// Sender defines the minimal interface that email providers must implement.
// It accepts a fully-prepared Email and handles the actual delivery.
type Sender interface {
	// Send delivers an email message.
	// The Email must have To, Subject, and a body already set.
	// Returns an error if delivery fails.
	Send(ctx context.Context, email *Email) error
}

// Transport is a Sender with an explicit session lifecycle. Session-oriented
// providers (SMTP) connect, upgrade to TLS, and authenticate in Open, reuse
// the connection for every Send, and release it in Close. Stateless API
// providers implement Open and Close as no-ops.
type Transport interface {
	Sender

	// Open establishes and authenticates the underlying session.
	// It must be called before Send and returns ErrAuthFailed or
	// ErrConnectionFailed (wrapped) when the session cannot be established.
	Open(ctx context.Context) error

	// Close releases the session. Safe to call when Open never succeeded.
	Close() error
}
