package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mindweave/sevenmind/internal/config"
)

// shutdownGrace bounds graceful drain of in-flight requests after the
// context is cancelled. Turns chain many completion calls, so give them
// room to finish.
const shutdownGrace = 30 * time.Second

// Run serves the API on cfg.Server.ListenAddr until ctx is cancelled, then
// drains in-flight requests. TLS is used when cfg.Server.TLS is set.
func (s *Server) Run(ctx context.Context, cfg *config.Config) error {
	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if tls := cfg.Server.TLS; tls != nil {
			slog.Info("listening", "addr", srv.Addr, "tls", true)
			err = srv.ListenAndServeTLS(tls.CertFile, tls.KeyFile)
		} else {
			slog.Info("listening", "addr", srv.Addr, "tls", false)
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	})

	g.Go(func() error {
		<-ctx.Done()
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(drainCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
