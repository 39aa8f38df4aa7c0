package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/participation-service/internal/config"
	"github.com/SAP-F-2025/participation-service/internal/handlers"
	"github.com/SAP-F-2025/participation-service/internal/utils"
	"github.com/SAP-F-2025/participation-service/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var port string
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := newRuntime(ctx, cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			if migrate {
				if err := runMigrations(rt); err != nil {
					return err
				}
			}

			return serve(ctx, rt)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port, overrides PORT")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Run database migrations before serving")

	return cmd
}

func newRouter(rt *runtime) *gin.Engine {
	if rt.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := utils.NewSlogLogger(rt.logger)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))
	router.Use(handlers.RequestTimeout(rt.cfg.RequestTimeout))

	handlers.NewHandlerManager(rt.services, validator.New(), logger).SetupRoutes(router)
	return router
}

func serve(ctx context.Context, rt *runtime) error {
	server := &http.Server{
		Addr:              ":" + rt.cfg.Port,
		Handler:           newRouter(rt),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("Starting HTTP server", "port", rt.cfg.Port, "environment", rt.cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	rt.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
