// Package httpapi serves the LocalSwap REST API with gin, including a
// server-sent events feed of new chat messages.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrijs2005/localswap/internal/logging"
	"github.com/dmitrijs2005/localswap/internal/server/config"
	"github.com/dmitrijs2005/localswap/internal/server/transport"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	// multipart uploads above this size spill to temporary files
	maxMultipartMemory = 8 << 20
)

type HTTPServer struct {
	address       string
	services      transport.Services
	logger        logging.Logger
	jwtSecret     []byte
	devMode       bool
	tokenValidity time.Duration
	corsOrigins   []string
	keepAlive     time.Duration
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, svc transport.Services) *HTTPServer {
	return &HTTPServer{
		address:       cfg.EndpointAddrHTTP,
		services:      svc,
		logger:        l.With("module", "http_server"),
		jwtSecret:     []byte(cfg.SecretKey),
		devMode:       cfg.DevMode,
		tokenValidity: cfg.TokenValidityDuration,
		corsOrigins:   cfg.CORSOrigins,
		keepAlive:     25 * time.Second,
	}
}

func (s *HTTPServer) corsMiddleware() gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if slices.Contains(s.corsOrigins, "*") {
		cc.AllowAllOrigins = true
		cc.AllowCredentials = false
	} else {
		cc.AllowOrigins = s.corsOrigins
	}
	return cors.New(cc)
}

// Router builds the gin engine with every route registered.
func (s *HTTPServer) Router() *gin.Engine {
	if !s.devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if len(s.corsOrigins) > 0 {
		r.Use(s.corsMiddleware())
	}
	r.MaxMultipartMemory = maxMultipartMemory

	r.GET("/healthz", s.healthz)

	if s.devMode {
		r.POST("/auth/test-token", s.issueTestToken)
	}

	public := r.Group("/api")
	{
		public.GET("/catalog", s.catalog)
		public.GET("/items/nearby", s.nearbyItems)
		public.GET("/items/:id", s.getItem)
	}

	private := r.Group("/api", s.AuthMiddleware())
	{
		private.POST("/items", s.createItem)
		private.GET("/my-items", s.myItems)
		private.PATCH("/items/:id/status", s.updateItemStatus)
		private.DELETE("/items/:id", s.deleteItem)

		private.POST("/images", s.uploadImage)
		private.POST("/images/presign", s.presignImage)
		private.DELETE("/images", s.deleteImage)

		private.GET("/conversations", s.listConversations)
		private.POST("/conversations", s.getOrCreateConversation)
		private.GET("/conversations/:id/messages", s.getMessages)
		private.POST("/conversations/:id/messages", s.sendMessage)
		private.POST("/conversations/:id/read", s.markRead)
		private.GET("/conversations/:id/stream", s.streamMessages)

		private.GET("/profile", s.getProfile)
		private.PUT("/profile", s.updateProfile)
		private.GET("/profiles/:id", s.getProfile)
		private.POST("/ratings", s.rateUser)
	}

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
// Request contexts derive from ctx so open event streams end on shutdown.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
