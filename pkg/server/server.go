// Package server exposes preview panels over HTTP so the documentation site
// can drive playback and stream pose updates.
package server

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gwillem/ftcpreview/pkg/playback"
)

const version = "1.0.0"

// Server holds the HTTP handlers and the loop every engine runs on.
type Server struct {
	manager   *Manager
	loop      *playback.Loop
	startTime time.Time
	version   string
}

// NewServer creates a server whose engines run on loop. logf may be nil.
func NewServer(loop *playback.Loop, logf func(format string, args ...any)) *Server {
	return &Server{
		manager:   NewManager(loop, logf),
		loop:      loop,
		startTime: time.Now(),
		version:   version,
	}
}

// Manager returns the instance manager.
func (s *Server) Manager() *Manager {
	return s.manager
}

// Shutdown unmounts every preview.
func (s *Server) Shutdown(ctx context.Context) {
	s.manager.CloseAll(ctx)
}

// NewRouter builds a gin engine with CORS for the given origins and the API
// routes installed. No origins, or "*", allows every origin.
func (s *Server) NewRouter(allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowOrigins) == 0 || containsWildcard(allowOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	s.SetupRoutes(r)
	return r
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// SetupRoutes installs the API routes on r.
func (s *Server) SetupRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/presets", s.handleGetPresets)

		previews := v1.Group("/previews")
		{
			previews.GET("", s.handleGetPreviews)
			previews.POST("", s.handleCreatePreview)
			previews.GET("/:id", s.handleGetPreview)
			previews.DELETE("/:id", s.handleDeletePreview)

			// transport controls
			previews.POST("/:id/run", s.handleRun)
			previews.POST("/:id/stop", s.handleStop)
			previews.POST("/:id/reset", s.handleReset)

			previews.GET("/:id/events", s.handleEvents)
		}

		system := v1.Group("/system")
		{
			system.GET("/health", s.handleHealthCheck)
		}
	}
}
