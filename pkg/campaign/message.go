package campaign

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/mailblast/pkg/mailer"
	"github.com/dmitrymomot/mailblast/pkg/placeholder"
	"github.com/dmitrymomot/mailblast/pkg/recipients"
)

// Preview builds the outbound message for a single record without opening
// any transport. The web UI uses it to show the composer a rendered sample.
func Preview(c Campaign, rec recipients.Record) (*mailer.Email, error) {
	return buildEmail(c, rec)
}

// buildEmail assembles the outbound message for one recipient: personalized
// subject, plain-text part, HTML part, and the optional inline image. Pure
// construction, no I/O; deterministic given the same campaign and record.
func buildEmail(c Campaign, rec recipients.Record) (*mailer.Email, error) {
	subject, err := placeholder.Render(c.Template.Subject, rec)
	if err != nil {
		return nil, fmt.Errorf("render subject: %w", err)
	}
	body, err := placeholder.Render(c.Template.Body, rec)
	if err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}

	htmlBody := body
	if c.Template.Markdown {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(body), &buf); err != nil {
			return nil, fmt.Errorf("convert markdown: %w", err)
		}
		htmlBody = buf.String()
	}

	email := &mailer.Email{
		From:    c.From,
		To:      []string{mailer.Recipient(rec.Name, rec.Email)},
		Subject: subject,
		Text:    body,
		HTML:    composeHTML(htmlBody, c.Image != nil),
	}

	if c.Image != nil {
		email.Attachments = []mailer.Attachment{{
			Filename:    c.Image.Filename,
			ContentType: imageContentType(c.Image),
			ContentID:   ImageContentID,
			Content:     c.Image.Content,
		}}
	}

	return email, nil
}

// composeHTML wraps the rendered body in a minimal HTML document. With an
// image attached it appends the cid reference that resolves to the inline
// part; without one the document contains no image reference at all.
func composeHTML(body string, withImage bool) string {
	var b strings.Builder
	b.WriteString("<html>\n  <body>\n    ")
	b.WriteString(body)
	if withImage {
		b.WriteString("\n    <br><img src=\"cid:" + ImageContentID + "\" style=\"width:600px;max-width:100%;height:auto;border-radius:10px;\">")
	}
	b.WriteString("\n  </body>\n</html>\n")
	return b.String()
}

// imageContentType resolves the MIME type from the filename, falling back to
// content sniffing for files without a usable extension.
func imageContentType(img *InlineImage) string {
	if ct := mime.TypeByExtension(filepath.Ext(img.Filename)); ct != "" {
		return ct
	}
	return http.DetectContentType(img.Content)
}
