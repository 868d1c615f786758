// Package server provides the live preview HTTP server: JSON endpoints for
// colour and scale calculations, the current token stylesheet, and a
// WebSocket feed that pushes new CSS whenever the config file changes.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/oltre/internal/config"
	"github.com/jmylchreest/oltre/internal/plugin/output/css"
	"github.com/jmylchreest/oltre/internal/tokens"
)

//go:embed static/*
var staticFiles embed.FS

// DefaultPollInterval is how often the config file's mtime is checked.
const DefaultPollInterval = time.Second

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// ConfigPath is watched for changes. Empty disables reloading.
	ConfigPath string

	// PollInterval defaults to DefaultPollInterval.
	PollInterval time.Duration

	// Prepare is applied to every freshly loaded config before it is
	// validated, so command-line overrides survive reloads.
	Prepare func(*config.Config) error

	Logger hclog.Logger
}

// LiveMessage is sent to WebSocket clients.
type LiveMessage struct {
	Type     string `json:"type"` // "css" or "error"
	Client   string `json:"client,omitempty"`
	Revision string `json:"revision,omitempty"`
	CSS      string `json:"css,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Server serves the preview API.
type Server struct {
	opts     Options
	logger   hclog.Logger
	hub      *Hub
	router   *http.ServeMux
	upgrader websocket.Upgrader

	// live serialises a revision swap and its broadcast with a new client's
	// registration and first message.
	live sync.Mutex

	mu       sync.RWMutex
	cfg      *config.Config
	set      *tokens.Set
	css      []byte
	revision string
	modTime  time.Time
}

// New builds the initial token set from cfg and wires the routes.
func New(cfg *config.Config, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	s := &Server{
		opts:   opts,
		logger: opts.Logger,
		hub:    NewHub(opts.Logger.Named("live")),
		router: http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     sameHost,
		},
	}

	if err := s.Publish(cfg); err != nil {
		return nil, err
	}
	if opts.ConfigPath != "" {
		if info, err := os.Stat(opts.ConfigPath); err == nil {
			s.modTime = info.ModTime()
		}
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to create static filesystem: %v", err))
	}
	s.router.Handle("GET /", http.FileServer(http.FS(staticFS)))

	s.router.HandleFunc("GET /api/health", s.handleHealth)
	s.router.HandleFunc("GET /api/palette", s.handlePalette)
	s.router.HandleFunc("POST /api/palette", s.handlePalette)
	s.router.HandleFunc("GET /api/contrast", s.handleContrast)
	s.router.HandleFunc("POST /api/contrast", s.handleContrast)
	s.router.HandleFunc("GET /api/scale", s.handleScale)
	s.router.HandleFunc("GET /api/tokens", s.handleTokens)
	s.router.HandleFunc("GET /api/audit", s.handleAudit)
	s.router.HandleFunc("GET /tokens.css", s.handleCSS)
	s.router.HandleFunc("GET /api/live", s.handleLive)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the live connection hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Current returns the token set, its stylesheet and revision id.
func (s *Server) Current() (*tokens.Set, []byte, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set, s.css, s.revision
}

// Publish builds a token set from cfg, makes it current and pushes the new
// stylesheet to live clients. On error the current set is kept.
func (s *Server) Publish(cfg *config.Config) error {
	set, err := tokens.Build(cfg)
	if err != nil {
		return err
	}
	sheet, err := css.Render(set, css.RenderOptions{
		Utilities: true,
		Minify:    cfg.Minify,
		Logger:    s.logger,
	})
	if err != nil {
		return err
	}

	rev := uuid.NewString()
	s.live.Lock()
	defer s.live.Unlock()

	s.mu.Lock()
	s.cfg, s.set, s.css, s.revision = cfg, set, sheet, rev
	s.mu.Unlock()

	s.logger.Info("published tokens", "palette", set.Name(), "typography", set.Typography.Key, "revision", rev)
	s.hub.Broadcast(LiveMessage{Type: "css", Revision: rev, CSS: string(sheet)})
	return nil
}

// Reload re-reads the config file and publishes it. Failures are reported
// to live clients and the previous tokens stay in place.
func (s *Server) Reload() error {
	err := s.reload()
	if err != nil {
		s.logger.Warn("reload failed, keeping previous tokens", "error", err)
		s.hub.Broadcast(LiveMessage{Type: "error", Error: err.Error()})
	}
	return err
}

func (s *Server) reload() error {
	if s.opts.ConfigPath == "" {
		return errors.New("no config file to reload")
	}
	cfg, err := config.Load(s.opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if s.opts.Prepare != nil {
		if err := s.opts.Prepare(cfg); err != nil {
			return err
		}
	}
	return s.Publish(cfg)
}

// changed reports whether the config file's mtime moved since the last check.
func (s *Server) changed() bool {
	info, err := os.Stat(s.opts.ConfigPath)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if info.ModTime().Equal(s.modTime) {
		return false
	}
	s.modTime = info.ModTime()
	return true
}

func (s *Server) watch(ctx context.Context) {
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.changed() {
				s.logger.Debug("config changed", "path", s.opts.ConfigPath)
				_ = s.Reload()
			}
		}
	}
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.opts.ConfigPath != "" {
		go s.watch(ctx)
	}

	go func() {
		<-ctx.Done()
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
		}
	}()

	s.logger.Info("preview server listening", "url", "http://"+ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
