package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/vega-contracts/internal/config"
	"github.com/gaze-network/vega-contracts/modules/staking"
	"github.com/gaze-network/vega-contracts/pkg/automaxprocs"
	"github.com/gaze-network/vega-contracts/pkg/errorhandler"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/logger/slogx"
	"github.com/gaze-network/vega-contracts/pkg/middleware/requestcontext"
	"github.com/gaze-network/vega-contracts/pkg/middleware/requestlogger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 60 * time.Second
)

func NewServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and track transactions of new stake events",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			return serveHandler(cmd, args)
		},
	}

	flags := serveCmd.Flags()
	flags.Int("port", 8080, "HTTP server port")
	flags.Bool("watch", true, "Track the transactions of new stake events")

	config.BindPFlag("http_server.port", flags.Lookup("port"))
	config.BindPFlag("tracker.watch", flags.Lookup("watch"))
	return serveCmd
}

func newHTTPServer(conf config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Vega Contracts",
		ErrorHandler: errorhandler.NewHTTPErrorHandler(),
	})
	app.
		Use(favicon.New()).
		Use(cors.New()).
		Use(requestid.New()).
		Use(requestcontext.New(requestcontext.Config{})).
		Use(requestlogger.New(conf.HTTPServer.Logger)).
		Use(fiberrecover.New(fiberrecover.Config{
			EnableStackTrace: true,
			StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
				buf := make([]byte, 1024)
				buf = buf[:runtime.Stack(buf, false)]
				logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler", slogx.Any("panic", e), slog.String("stacktrace", string(buf)))
			},
		})).
		Use(compress.New(compress.Config{
			Level: compress.LevelDefault,
		}))

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return errors.WithStack(c.SendStatus(http.StatusOK))
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	return app
}

func serveHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, slogx.Stringer("network", conf.Network))

	injector := newInjector(ctx, conf)
	module, err := do.Invoke[*staking.Module](injector)
	if err != nil {
		return errors.Wrap(err, "can't init staking module")
	}

	// Tracking outlives requests, but not the process
	ctxWorker, stopWorker := context.WithCancel(context.WithoutCancel(ctx))
	defer stopWorker()

	httpServer := newHTTPServer(conf)
	if err := module.Mount(ctxWorker, httpServer); err != nil {
		return errors.WithStack(err)
	}
	if conf.Tracker.Watch {
		if err := module.Watch(ctxWorker); err != nil {
			return errors.WithStack(err)
		}
	}

	go func() {
		// stop main process if API stopped
		defer stop()
		logger.InfoContext(ctx, "Started HTTP server", slog.Int("port", conf.HTTPServer.Port))
		if err := httpServer.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)); err != nil {
			logger.ErrorContext(ctx, "Something went wrong, error during running HTTP server", slogx.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully stop the server
	<-ctx.Done()

	// Force shutdown if timeout exceeded or got signal again
	go func() {
		defer os.Exit(1)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case <-ctx.Done():
			logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
		case <-time.After(shutdownTimeout + 15*time.Second):
			logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
		}
	}()

	if err := httpServer.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.ErrorContext(ctx, "Failed to shutdown HTTP server", slogx.Error(err))
	}
	stopWorker()
	if err := injector.Shutdown(); err != nil {
		logger.PanicContext(ctx, "Failed while gracefully shutting down", slogx.Error(err))
	}
	return nil
}
