package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-reportgen/components/assistant"
	"github.com/goliatone/go-reportgen/pkg/session"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report assistant over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides app.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader, err := a.catalogReader(ctx)
	if err != nil {
		return err
	}

	if a.cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	manager := session.NewManager(reader,
		session.WithIdleTTL(a.cfg.Session.IdleTTL),
		session.WithManagerLogger(a.logger.Named("sessions")),
		session.WithSessionOptions(session.WithLogger(a.logger.Named("session"))),
	)
	component, err := assistant.New(ctx, reader, manager,
		assistant.WithBasePath(a.cfg.App.BasePath),
		assistant.WithPageTitle(a.cfg.App.PageTitle),
		assistant.WithTemplatesDir(a.cfg.App.TemplatesDir),
		assistant.WithRejections(a.rejected),
		assistant.WithLogger(a.logger.Named("http")),
	)
	if err != nil {
		return err
	}

	addr := a.cfg.App.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           component.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("reportgen listening on %s%s", addr, a.cfg.App.BasePath))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down", zap.Int("sessions", manager.Len()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
