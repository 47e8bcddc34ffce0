package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates no body content was provided.
	ErrNoContent = errors.New("email must have a body")

	// ErrSendFailed indicates email delivery failed. Per-recipient delivery
	// failures wrap this error; a batch may continue past them.
	ErrSendFailed = errors.New("failed to send email")

	// ErrAuthFailed indicates the transport rejected the credentials.
	ErrAuthFailed = errors.New("transport authentication failed")

	// ErrConnectionFailed indicates the transport session could not be
	// established or was lost.
	ErrConnectionFailed = errors.New("transport connection failed")
)
