package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/lioratech/mvp-web-sub001/modules"
	"github.com/lioratech/mvp-web-sub001/pkg/application"
	"github.com/lioratech/mvp-web-sub001/pkg/composables"
	"github.com/lioratech/mvp-web-sub001/pkg/configuration"
	"github.com/lioratech/mvp-web-sub001/pkg/eventbus"
	"github.com/lioratech/mvp-web-sub001/pkg/metrics"
	"github.com/lioratech/mvp-web-sub001/pkg/middleware"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	if err := run(conf, logger); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

func run(conf *configuration.Configuration, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return err
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app); err != nil {
		return err
	}
	if err := app.Migrations().Run(ctx); err != nil {
		return err
	}

	app.RegisterMiddleware(
		middleware.WithLogger(logger),
	)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	router := mux.NewRouter()
	router.Use(app.Middleware()...)
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
		})
	})
	for _, c := range app.Controllers() {
		c.Register(router)
	}

	server := &http.Server{
		Addr:    conf.SocketAddress,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("address", conf.SocketAddress).Info("listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
