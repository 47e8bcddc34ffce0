package campaign

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailblast/pkg/recipients"
)

// ImageContentID is the fixed Content-ID under which the inline image is
// attached. The HTML body references it as "cid:banner".
const ImageContentID = "banner"

// Template is the user-supplied message template for one pass. Subject and
// Body may contain {name} and {company} placeholders; any embedded markup
// passes through to the HTML part unchanged. With Markdown set, the rendered
// body is converted to HTML before wrapping.
type Template struct {
	Subject  string
	Body     string
	Markdown bool
}

// InlineImage is an optional image embedded into every outgoing HTML message.
// Content is read once and shared read-only across all recipient builds.
type InlineImage struct {
	Filename string
	Content  []byte
}

// LoadImage reads the image source once into an owned buffer. Pass the result
// into the campaign instead of the reader itself: upload streams are
// single-use and would be exhausted after the first message build.
func LoadImage(filename string, r io.Reader) (*InlineImage, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &InlineImage{Filename: filename, Content: content}, nil
}

// Campaign describes one send pass: who it is from, what it says, and who
// receives it. It is immutable for the duration of the pass.
type Campaign struct {
	From       string
	Template   Template
	Recipients []recipients.Record
	Image      *InlineImage
}

// Outcome records the delivery result for a single recipient.
type Outcome struct {
	Recipient recipients.Record
	Err       error
}

// OK reports whether the message was accepted for delivery.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Report summarizes one pass. Outcomes preserve recipient order and cover
// every recipient that was attempted, including the failed ones.
type Report struct {
	PassID    uuid.UUID
	Outcomes  []Outcome
	Attempted int
	Sent      int
	Failed    int
}

// ProgressFunc receives a progress update after each processed recipient.
// done counts processed recipients and reaches total when the pass completes.
type ProgressFunc func(done, total int)

// Option configures a pass.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	progress ProgressFunc
}

// WithLogger sets the logger for per-recipient and pass-level log lines.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}
