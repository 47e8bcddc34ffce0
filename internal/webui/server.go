// Package webui serves the browser form for composing and sending a pass.
package webui

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/mailblast/internal/config"
	"github.com/dmitrymomot/mailblast/pkg/mailer"
)

//go:embed views/*.html
var viewsFS embed.FS

// TransportFactory builds the outbound transport for one send request. The
// config may carry per-request credential overrides from the form.
type TransportFactory func(config.Config) (mailer.Transport, error)

// Server is the HTTP presentation layer. All pipeline state is request
// scoped; the server itself holds only configuration and collaborators.
type Server struct {
	log          *slog.Logger
	cfg          config.Config
	newTransport TransportFactory
	views        *template.Template
	sanitizer    *bluemonday.Policy
}

// New creates the web UI server.
func New(log *slog.Logger, cfg config.Config, factory TransportFactory) *Server {
	return &Server{
		log:          log,
		cfg:          cfg,
		newTransport: factory,
		views:        template.Must(template.ParseFS(viewsFS, "views/*.html")),
		sanitizer:    bluemonday.UGCPolicy(),
	}
}

// Router assembles the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/preview", s.handlePreview)
	r.Post("/send", s.handleSend)

	return r
}

// Run starts the HTTP server and blocks until shutdown. It handles SIGINT
// and SIGTERM for graceful shutdown.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("server starting", slog.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
