package webui

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/mailblast/internal/config"
	"github.com/dmitrymomot/mailblast/pkg/campaign"
	"github.com/dmitrymomot/mailblast/pkg/recipients"
)

// maxUploadSize bounds the multipart form in memory (list + image).
const maxUploadSize = 32 << 20

// previewRecord is the sample recipient used by the preview endpoint.
var previewRecord = recipients.Record{Name: "Ann", Email: "ann@example.com", Company: "Acme"}

type indexData struct {
	Provider   string
	FromEmail  string
	NeedsCreds bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Provider:   s.cfg.Provider,
		FromEmail:  s.cfg.SMTP.SenderEmail,
		NeedsCreds: s.cfg.Provider == config.ProviderSMTP && s.cfg.SMTP.Password == "",
	}
	s.render(w, "index.html", data)
}

// handlePreview renders the body template for a sample recipient and returns
// the HTML fragment. The fragment is sanitized because it is injected into
// the composer page; outgoing mail keeps the author's markup untouched.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	rendered, err := renderBody(r.FormValue("body"), r.FormValue("markdown") != "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(s.sanitizer.Sanitize(rendered)))
}

type reportData struct {
	Report *campaign.Report
	Error  string
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	subject := strings.TrimSpace(r.FormValue("subject"))
	body := r.FormValue("body")
	if subject == "" || strings.TrimSpace(body) == "" {
		http.Error(w, "subject and message are required", http.StatusBadRequest)
		return
	}

	listFile, listHeader, err := r.FormFile("recipients")
	if err != nil {
		http.Error(w, "recipient list is required", http.StatusBadRequest)
		return
	}
	defer listFile.Close()

	recs, err := recipients.Parse(listHeader.Filename, listFile)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	c := campaign.Campaign{
		Template: campaign.Template{
			Subject:  subject,
			Body:     body,
			Markdown: r.FormValue("markdown") != "",
		},
		Recipients: recs,
	}

	// Optional inline image: read the upload once, before the send loop.
	if imgFile, imgHeader, err := r.FormFile("image"); err == nil {
		defer imgFile.Close()
		img, err := campaign.LoadImage(imgHeader.Filename, imgFile)
		if err != nil {
			http.Error(w, "failed to read image", http.StatusInternalServerError)
			return
		}
		c.Image = img
	} else if !errors.Is(err, http.ErrMissingFile) {
		http.Error(w, "invalid image upload", http.StatusBadRequest)
		return
	}

	// Form credentials override the configured SMTP identity for this pass.
	cfg := s.cfg
	if v := strings.TrimSpace(r.FormValue("from_email")); v != "" {
		cfg.SMTP.SenderEmail = v
		cfg.SMTP.Username = v
	}
	if v := r.FormValue("password"); v != "" {
		cfg.SMTP.Password = v
	}

	transport, err := s.newTransport(cfg)
	if err != nil {
		s.log.Error("transport setup failed", slog.String("error", err.Error()))
		http.Error(w, "transport setup failed", http.StatusInternalServerError)
		return
	}

	report, runErr := campaign.Run(r.Context(), transport, c,
		campaign.WithLogger(s.log),
		campaign.WithProgress(func(done, total int) {
			s.log.Info("progress", slog.Int("done", done), slog.Int("total", total))
		}),
	)

	data := reportData{Report: report}
	if runErr != nil {
		data.Error = runErr.Error()
	}
	s.render(w, "report.html", data)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.views.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("render view failed",
			slog.String("view", name),
			slog.String("error", err.Error()),
		)
	}
}

// renderBody personalizes the body for the sample record, honoring markdown
// mode, by building a throwaway single-recipient campaign.
func renderBody(body string, markdown bool) (string, error) {
	c := campaign.Campaign{
		Template: campaign.Template{Body: body, Markdown: markdown},
	}
	email, err := campaign.Preview(c, previewRecord)
	if err != nil {
		return "", err
	}
	return email.HTML, nil
}
