// Package campaign drives personalized bulk-email passes.
//
// A Campaign pairs a message template with a loaded recipient list and an
// optional inline image. Run executes one pass over a mailer.Transport:
// validate the template, open one authenticated session, build and submit one
// message per recipient in list order, and return a Report with an Outcome
// per attempted recipient.
//
// Per-recipient delivery failures are recorded and skipped past; template and
// session failures abort the pass. Progress is reported after each recipient
// via an optional callback.
package campaign
