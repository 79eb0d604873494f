// Package server exposes the form wizard over HTTP: a login gate, one page per
// section with server-side validation, a JSON state snapshot and a websocket
// for live field updates.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/client"
	"github.com/goliatone/go-formwizard/pkg/render"
)

// DefaultCookieName names the session cookie.
const DefaultCookieName = "formwizard_session"

// Config holds HTTP server configuration
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// CookieName overrides DefaultCookieName.
	CookieName string
	// LoadWait bounds how long POST /login waits for the form fetch before
	// redirecting; the form page shows the loading state afterwards.
	LoadWait time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		CookieName:   DefaultCookieName,
		LoadWait:     2 * time.Second,
	}
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and lifecycle logs.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAuthenticator sets the login collaborator. Defaults to client.AllowAll.
func WithAuthenticator(auth client.Authenticator) Option {
	return func(s *Server) {
		if auth != nil {
			s.auth = auth
		}
	}
}

// WithTheme passes theme tokens and asset resolution to every page render.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithAssets serves files under /assets.
func WithAssets(files fs.FS) Option {
	return func(s *Server) {
		s.assets = files
	}
}

// Server is the HTTP adapter over per-session form controllers.
type Server struct {
	config     Config
	httpServer *http.Server
	router     *gin.Engine
	sessions   *SessionStore
	renderer   render.Renderer
	auth       client.Authenticator
	theme      *theme.RendererConfig
	assets     fs.FS
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

// New creates the server. factory builds the controller for each new
// session; renderer draws every HTML page.
func New(config Config, factory ControllerFactory, renderer render.Renderer, options ...Option) (*Server, error) {
	if factory == nil {
		return nil, ErrNoControllerFactory
	}
	if renderer == nil {
		return nil, ErrNoRenderer
	}
	if config.CookieName == "" {
		config.CookieName = DefaultCookieName
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		config:   config,
		router:   gin.New(),
		sessions: NewSessionStore(factory),
		renderer: renderer,
		auth:     client.AllowAll{},
		logger:   zap.NewNop(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	s.router.GET("/", s.handleIndex)
	s.router.POST("/login", s.handleLogin)
	s.router.POST("/logout", s.handleLogout)

	form := s.router.Group("/form")
	{
		form.GET("", s.handleForm)
		form.POST("", s.handleFormAction)
		form.GET("/state", s.handleState)
		form.GET("/ws", s.handleWebsocket)
	}

	if s.assets != nil {
		s.router.StaticFS("/assets", http.FS(s.assets))
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.Address(),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("address", s.httpServer.Addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", zap.Error(err))
		return fmt.Errorf("server: listen: %w", err)
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return fmt.Errorf("server: shutdown: %w", err)
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Sessions exposes the session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
