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

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/config"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/controllers"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/middleware"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository/memory"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/routes"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/services"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const loginAttemptsPerMinute = 20

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*repository.Store, func(context.Context) error, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn().Msg("using the in-memory store, data is lost on restart")
		store, _ := memory.NewStore()
		return store, func(context.Context) error { return nil }, nil
	case config.DriverMongo:
		db, err := config.ConnectDatabase(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMongoStore(db), db.Disconnect, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := cfg.Origins(); len(origins) > 0 {
		c.AllowOrigins = origins
	} else {
		// Credentials rule out "*", so echo whichever origin asked.
		c.AllowOriginFunc = func(string) bool { return true }
	}
	return c
}

func startScheduler(cfg *config.Config, reports *services.ReportService, limiter *middleware.IPRateLimiter) (*gocron.Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	s := gocron.NewScheduler(location)
	_, err = s.Every(1).Day().At(cfg.StockAlertAt).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := reports.SendDailyAlert(ctx); err != nil {
			log.Error().Err(err).Msg("daily stock alert")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule stock alert at %q: %w", cfg.StockAlertAt, err)
	}
	_, err = s.Every(5).Minutes().Do(func() {
		if n := limiter.Cleanup(10 * time.Minute); n > 0 {
			log.Debug().Int("purged", n).Msg("login limiter entries purged")
		}
	})
	if err != nil {
		return nil, err
	}
	s.StartAsync()
	return s, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Info().Str("mode", gin.Mode()).Str("store", cfg.StoreDriver).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}

	bootCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	if err := services.Provision(bootCtx, store, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("provision")
	}
	if err := services.SyncSequences(bootCtx, store); err != nil {
		log.Fatal().Err(err).Msg("sync sequences")
	}
	cancel()

	middleware.InitMetrics(prometheus.DefaultRegisterer)
	services.RegisterMetrics(prometheus.DefaultRegisterer)

	var notifier services.Notifier
	if cfg.MailEnabled() {
		notifier = &utils.Mailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		}
	}
	reports := services.NewReportService(store, notifier, cfg.AlertEmail)

	limiter := middleware.NewLoginRateLimiter(loginAttemptsPerMinute)
	scheduler, err := startScheduler(cfg, reports, limiter)
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}

	ctl := controllers.NewDefault(store, cfg.JWTSecret, reports)
	ctl.SecureCookie = cfg.IsProduction()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.PrometheusMiddleware(),
		cors.New(corsConfig(cfg)),
	)
	routes.InitializeRoutes(r, ctl, routes.Options{
		APIPrefix:    cfg.APIPrefix,
		StaticDir:    cfg.StaticDir,
		AuthRequired: cfg.AuthRequired,
		JWTSecret:    []byte(cfg.JWTSecret),
		LoginLimiter: limiter,
		Metrics:      promhttp.Handler(),
		MetricsIPs:   cfg.MetricsIPs(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	scheduler.Stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := closeStore(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("close store")
	}
}
