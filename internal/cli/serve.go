package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/photogrid/internal/config"
	"github.com/matzehuels/photogrid/pkg/buildinfo"
	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
	"github.com/matzehuels/photogrid/pkg/pagination"
)

const (
	maxGalleryPages = 10
	maxBodyBytes    = 8 << 20
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command for the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		flags gridFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

Endpoints:
  GET  /healthz                                   liveness check
  POST /api/layout                                lay out posted photos
  GET  /api/gallery?width=N&pages=N&gap=N&row_height=N
                                                  fetch pages and lay them out

The server shuts down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, c.Config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.Default().Addr, "listen address")
	flags.register(cmd.Flags(), true)

	return cmd
}

// runServe serves until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	s := &server{
		cfg:    cfg,
		logger: c.Logger,
		newFetcher: func(l *log.Logger) pagination.Fetcher {
			return c.newFetcher(cfg, l)
		},
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		printInfo("Listening on %s", StyleLink.Render("http://"+cfg.Addr))
		printDetail("Listing service: %s", cfg.BaseURL)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	c.Logger.Info("server stopped")
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

type server struct {
	cfg        config.Config
	logger     *log.Logger
	newFetcher func(*log.Logger) pagination.Fetcher
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Get("/gallery", s.handleGallery)
	})
	return r
}

// logRequests attaches a request-scoped logger and logs each response.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		l := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), l)))

		l.Info("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(),
			"bytes", ww.BytesWritten(), "duration", time.Since(start).Round(time.Microsecond))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Current()
	respond(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": info.Version,
		"commit":  info.Commit,
	})
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := decodePhotos(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := validatePhotos(req.Photos); err != nil {
		fail(w, r, err)
		return
	}
	opts := req.options(s.cfg.Layout(0))
	if err := config.ValidateLayout(opts); err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, newLayoutResponse(gallery.Static(req.Photos, opts), opts.Gap))
}

func (s *server) handleGallery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := s.cfg.Layout(0)

	width, err := intParam(q.Get("width"), "width", 0)
	if err != nil {
		fail(w, r, err)
		return
	}
	opts.ContainerWidth = width

	pages, err := intParam(q.Get("pages"), "pages", 1)
	if err == nil && (pages < 1 || pages > maxGalleryPages) {
		err = errors.New(errors.ErrCodeInvalidInput, "pages must be between 1 and %d", maxGalleryPages)
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	if opts.Gap, err = intParam(q.Get("gap"), "gap", opts.Gap); err != nil {
		fail(w, r, err)
		return
	}
	if opts.TargetRowHeight, err = intParam(q.Get("row_height"), "row_height", opts.TargetRowHeight); err != nil {
		fail(w, r, err)
		return
	}
	if err := config.ValidateLayout(opts); err != nil {
		fail(w, r, err)
		return
	}

	l := loggerFromContext(r.Context())
	ctrl := pagination.New(s.newFetcher(l),
		pagination.WithPageSize(s.cfg.PageSize),
		pagination.WithLogger(l),
	)
	defer ctrl.Close()

	if _, err := loadPages(r.Context(), ctrl, pages, nil); err != nil {
		fail(w, r, err)
		return
	}

	resp := newLayoutResponse(gallery.Static(ctrl.Photos(), opts), opts.Gap)
	hasMore := ctrl.HasMore()
	resp.HasMore = &hasMore
	resp.NextPage = ctrl.Page()
	respond(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

func intParam(raw, name string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, raw)
	}
	return n, nil
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPhoto, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeFetch, errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	loggerFromContext(r.Context()).Warn("request failed", "status", status, "code", code, "err", err)
	respond(w, status, errorJSON{Code: string(code), Message: errors.UserMessage(err)})
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
