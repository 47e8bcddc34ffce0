// Package cli runs a send pass headlessly from a campaign file.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailblast/pkg/campaign"
	"github.com/dmitrymomot/mailblast/pkg/mailer"
	"github.com/dmitrymomot/mailblast/pkg/recipients"
)

// ErrPartialFailure indicates the pass completed but some deliveries failed.
var ErrPartialFailure = errors.New("some deliveries failed")

// CampaignFile is the YAML description of one pass. Relative paths resolve
// against the file's own directory.
type CampaignFile struct {
	From       string `yaml:"from"`
	Subject    string `yaml:"subject"`
	Body       string `yaml:"body"`
	Markdown   bool   `yaml:"markdown"`
	Recipients string `yaml:"recipients"`
	Image      string `yaml:"image"`
}

// LoadCampaign reads a campaign file and the recipient list and image it
// references. The image bytes are read once here, before the send loop.
func LoadCampaign(path string) (campaign.Campaign, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return campaign.Campaign{}, fmt.Errorf("read campaign file: %w", err)
	}

	var cf CampaignFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return campaign.Campaign{}, fmt.Errorf("parse campaign file: %w", err)
	}
	if cf.Recipients == "" {
		return campaign.Campaign{}, errors.New("campaign file must name a recipients file")
	}

	dir := filepath.Dir(path)

	listPath := resolve(dir, cf.Recipients)
	listFile, err := os.Open(listPath)
	if err != nil {
		return campaign.Campaign{}, fmt.Errorf("open recipients file: %w", err)
	}
	defer listFile.Close()

	recs, err := recipients.Parse(listPath, listFile)
	if err != nil {
		return campaign.Campaign{}, err
	}

	c := campaign.Campaign{
		From: cf.From,
		Template: campaign.Template{
			Subject:  cf.Subject,
			Body:     cf.Body,
			Markdown: cf.Markdown,
		},
		Recipients: recs,
	}

	if cf.Image != "" {
		imgPath := resolve(dir, cf.Image)
		imgFile, err := os.Open(imgPath)
		if err != nil {
			return campaign.Campaign{}, fmt.Errorf("open image file: %w", err)
		}
		defer imgFile.Close()

		img, err := campaign.LoadImage(filepath.Base(imgPath), imgFile)
		if err != nil {
			return campaign.Campaign{}, fmt.Errorf("read image file: %w", err)
		}
		c.Image = img
	}

	return c, nil
}

// Run executes one pass and logs the outcome of every recipient. It returns
// ErrPartialFailure when the pass finished but not every delivery succeeded.
func Run(ctx context.Context, log *slog.Logger, transport mailer.Transport, c campaign.Campaign) error {
	total := len(c.Recipients)
	log.Info("starting pass", slog.Int("recipients", total))

	report, err := campaign.Run(ctx, transport, c,
		campaign.WithLogger(log),
		campaign.WithProgress(func(done, total int) {
			log.Info("progress",
				slog.Int("done", done),
				slog.Int("total", total),
			)
		}),
	)
	if err != nil {
		return err
	}

	if report.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPartialFailure, report.Failed, report.Attempted)
	}

	log.Info("pass complete", slog.Int("sent", report.Sent))
	return nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
