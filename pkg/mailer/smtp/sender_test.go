package smtp

import (
	"bytes"
	"errors"
	"fmt"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailblast/pkg/mailer"
)

func testConfig() Config {
	return Config{
		Host:        "smtp.example.com",
		Port:        587,
		Username:    "sender@example.com",
		Password:    "app-password",
		SenderEmail: "sender@example.com",
		SenderName:  "Sender",
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	s, err := New(testConfig())
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestNew_UsernameDefaultsToSenderEmail(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Username = ""
	_, err := New(cfg)
	require.NoError(t, err)
}

func TestClose_WithoutOpen(t *testing.T) {
	t.Parallel()

	s, err := New(testConfig())
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestToMsg_BasicFields(t *testing.T) {
	t.Parallel()

	s, err := New(testConfig())
	require.NoError(t, err)

	msg, err := s.toMsg(&mailer.Email{
		To:      []string{"Ann <ann@example.com>"},
		Subject: "Hello Ann",
		Text:    "plain body",
		HTML:    "<html><body>html body</body></html>",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	require.Contains(t, raw, "Subject: Hello Ann")
	require.Contains(t, raw, "ann@example.com")
	require.Contains(t, raw, "sender@example.com", "config sender used as From fallback")
	require.Contains(t, raw, "multipart/alternative")
	require.Contains(t, raw, "plain body")
	require.Contains(t, raw, "html body")
}

func TestToMsg_InlineImage(t *testing.T) {
	t.Parallel()

	s, err := New(testConfig())
	require.NoError(t, err)

	msg, err := s.toMsg(&mailer.Email{
		To:      []string{"ann@example.com"},
		Subject: "Hi",
		Text:    "see banner",
		HTML:    `<html><body>see banner<img src="cid:banner"></body></html>`,
		Attachments: []mailer.Attachment{{
			Filename:    "banner.png",
			ContentType: "image/png",
			ContentID:   "banner",
			Content:     []byte{0x89, 'P', 'N', 'G'},
		}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := strings.ToLower(buf.String())
	require.Contains(t, raw, "banner.png")
	require.Contains(t, raw, "content-id")
	require.Contains(t, raw, "multipart/related")
}

func TestToMsg_InvalidAddress(t *testing.T) {
	t.Parallel()

	s, err := New(testConfig())
	require.NoError(t, err)

	_, err = s.toMsg(&mailer.Email{
		To:      []string{"not-an-address"},
		Subject: "Hi",
		Text:    "body",
	})
	require.Error(t, err)
}

func TestClassify_AuthCodes(t *testing.T) {
	t.Parallel()

	for _, code := range []int{530, 534, 535} {
		err := fmt.Errorf("dial: %w", &textproto.Error{Code: code, Msg: "authentication rejected"})
		require.ErrorIs(t, classify(err), mailer.ErrAuthFailed, "code %d", code)
	}
}

func TestClassify_OtherFailures(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, classify(errors.New("connection refused")), mailer.ErrConnectionFailed)
	require.ErrorIs(t,
		classify(&textproto.Error{Code: 421, Msg: "service not available"}),
		mailer.ErrConnectionFailed,
	)
}
