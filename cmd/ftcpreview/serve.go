package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gwillem/ftcpreview/pkg/playback"
	"github.com/gwillem/ftcpreview/pkg/robot"
	"github.com/gwillem/ftcpreview/pkg/server"
)

type ServeCommand struct {
	Host         string   `long:"host" env:"FTCPREVIEW_HOST" default:"127.0.0.1" description:"Listen address"`
	Port         int      `long:"port" env:"FTCPREVIEW_PORT" default:"9099" description:"Listen port"`
	FPS          int      `long:"fps" default:"60" description:"Animation frame rate"`
	AllowOrigins []string `long:"allow-origin" env:"FTCPREVIEW_ALLOW_ORIGINS" env-delim:"," description:"CORS origin allowed to call the API (repeatable, default any)"`
	Debug        bool     `long:"debug" description:"Run gin in debug mode"`
}

func (c *ServeCommand) Execute(args []string) error {
	if !c.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	fps := c.FPS
	if fps <= 0 {
		fps = robot.DefaultFPS
	}
	loop := playback.NewLoop(time.Second / time.Duration(fps))
	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	go func() {
		if err := loop.Run(loopCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Loop error: %v", err)
		}
	}()

	srv := server.NewServer(loop, log.Printf)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", c.Host, c.Port),
		Handler: srv.NewRouter(c.AllowOrigins),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		log.Printf("Serving previews on http://%s", httpServer.Addr)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		log.Printf("Shutting down...")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	srv.Shutdown(shutdownCtx)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	stopLoop()
	loop.Close()
	return nil
}
