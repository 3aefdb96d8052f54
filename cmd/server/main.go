// Command server runs the Courze enrollment and refund service.
//
// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal domain packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"courze/internal/certificate"
	certstore "courze/internal/certificate/store"
	"courze/internal/course"
	coursestore "courze/internal/course/store"
	"courze/internal/enrollment"
	enrollstore "courze/internal/enrollment/store"
	"courze/internal/event"
	"courze/internal/jwtauth"
	"courze/internal/payout"
	"courze/internal/platform/config"
	"courze/internal/platform/httpserver"
	"courze/internal/platform/logger"
	"courze/internal/platform/postgres"
	platformredis "courze/internal/platform/redis"
	httptransport "courze/internal/transport/http"

	certmetrics "courze/internal/certificate/metrics"
	certservice "courze/internal/certificate/service"
	coursemetrics "courze/internal/course/metrics"
	courseservice "courze/internal/course/service"
	enrollmetrics "courze/internal/enrollment/metrics"
	enrollservice "courze/internal/enrollment/service"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: postgres when configured, in-memory otherwise.
	var (
		courses coursestore.Store
		records enrollservice.EnrollmentStore
		certs   certservice.CertificateStore
		health  func(r *http.Request) error
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres setup failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		courses = coursestore.NewPostgres(db)
		records = enrollstore.NewPostgres(db)
		certs = certstore.NewPostgres(db)
		health = func(r *http.Request) error { return db.PingContext(r.Context()) }
	} else {
		log.Warn("no database configured, using in-memory stores")
		courses = coursestore.NewInMemory()
		records = enrollstore.NewInMemory()
		certs = certstore.NewInMemory()
	}

	// Redis backs the course cache and the payout retry queue when present.
	var retries payout.Queue = payout.NewMemoryQueue()
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}
	courseMetrics := coursemetrics.New()
	if redisClient != nil {
		defer redisClient.Close()
		courses = coursestore.NewCached(courses, redisClient, cfg.CourseCacheTTL, log, courseMetrics)
		retries = payout.NewRedisQueue(redisClient)
	}

	// Ledger event stream.
	var publisher event.Publisher = event.NewMemorySink()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := event.NewKafkaPublisher(ctx, cfg.KafkaBrokers, log)
		if err != nil {
			log.Error("kafka setup failed", "error", err)
			os.Exit(1)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	transferer := payout.NewLogTransferer(log)

	courseSvc := course.NewService(courses,
		courseservice.WithLogger(log),
		courseservice.WithMetrics(courseMetrics),
		courseservice.WithPublisher(publisher),
	)
	certSvc := certificate.NewService(certs,
		certservice.WithLogger(log),
		certservice.WithMetrics(certmetrics.New()),
	)
	enrollSvc := enrollment.NewService(records, courseSvc, certSvc,
		enrollservice.WithLogger(log),
		enrollservice.WithMetrics(enrollmetrics.New()),
		enrollservice.WithTransferer(transferer, retries),
		enrollservice.WithPublisher(publisher),
	)

	tokens := jwtauth.New(cfg.JWTSigningKey)
	router := httptransport.NewRouter(httptransport.Deps{
		Courses:      course.NewHandler(courseSvc, log),
		Enrollments:  enrollment.NewHandler(enrollSvc, log),
		Certificates: certificate.NewHandler(certSvc, log),
		Verifier:     tokens,
		Logger:       log,
		Health:       health,
	})

	srv := httpserver.New(cfg.Addr, router)
	worker := payout.NewWorker(retries, transferer, log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting courze server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
