package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/pmrathi94/VivahSetu/api/routes"
	"github.com/pmrathi94/VivahSetu/internal/analytics"
	"github.com/pmrathi94/VivahSetu/internal/audit"
	"github.com/pmrathi94/VivahSetu/internal/auth"
	"github.com/pmrathi94/VivahSetu/internal/budget"
	"github.com/pmrathi94/VivahSetu/internal/chat"
	"github.com/pmrathi94/VivahSetu/internal/functions"
	"github.com/pmrathi94/VivahSetu/internal/guests"
	"github.com/pmrathi94/VivahSetu/internal/media"
	"github.com/pmrathi94/VivahSetu/internal/memberships"
	"github.com/pmrathi94/VivahSetu/internal/notifications"
	"github.com/pmrathi94/VivahSetu/internal/otp"
	"github.com/pmrathi94/VivahSetu/internal/packing"
	"github.com/pmrathi94/VivahSetu/internal/timeline"
	"github.com/pmrathi94/VivahSetu/internal/users"
	"github.com/pmrathi94/VivahSetu/internal/vendors"
	"github.com/pmrathi94/VivahSetu/internal/weddings"
	"github.com/pmrathi94/VivahSetu/pkg/auth/session"
	"github.com/pmrathi94/VivahSetu/pkg/config"
	"github.com/pmrathi94/VivahSetu/pkg/db"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
	"github.com/pmrathi94/VivahSetu/pkg/mailer"
	"github.com/pmrathi94/VivahSetu/pkg/migrate"
	"github.com/pmrathi94/VivahSetu/pkg/places"
	"github.com/pmrathi94/VivahSetu/pkg/ratelimit"
	"github.com/pmrathi94/VivahSetu/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// Without Redis the API still runs: sessions, one-time codes, and rate
	// limits fall back to process-local stores that neither survive restarts
	// nor span replicas.
	var (
		redisPinger    redis.Pinger
		sessionManager *session.Manager
		limiter        ratelimit.Limiter
		otpStore       otp.CodeStore
	)
	if cfg.Redis.Configured() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		redisPinger = redisClient
		limiter = ratelimit.NewRedisLimiter(redisClient)
		otpStore = otp.NewRedisStore(redisClient)
		sessionManager, err = session.NewManager(redisClient, cfg.JWT)
		if err != nil {
			logg.Error(context.Background(), "failed to create session manager", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "redis not configured, using in-process sessions, codes, and rate limits")
		limiter = ratelimit.NewMemoryLimiter()
		otpStore = otp.NewMemoryStore()
		sessionManager, err = session.NewMemoryManager(cfg.JWT)
		if err != nil {
			logg.Error(context.Background(), "failed to create session manager", err)
			os.Exit(1)
		}
	}

	var mail mailer.Mailer
	if cfg.SMTP.Configured() {
		mail, err = mailer.NewSMTP(cfg.SMTP)
		if err != nil {
			logg.Error(context.Background(), "failed to create smtp mailer", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "smtp not configured, emails are logged only")
		mail = mailer.NewLog(logg)
	}

	var resolver vendors.PlaceResolver
	if cfg.Places.APIKey != "" {
		placesClient, err := places.NewClient(cfg.Places.APIKey)
		if err != nil {
			logg.Error(context.Background(), "failed to create places client", err)
			os.Exit(1)
		}
		resolver = placesClient
	}

	usersRepo := users.NewRepository(dbClient.DB())
	membershipsRepo := memberships.NewRepository(dbClient.DB())
	weddingsRepo := weddings.NewRepository(dbClient.DB())
	guestsRepo := guests.NewRepository(dbClient.DB())
	budgetRepo := budget.NewRepository(dbClient.DB())
	vendorsRepo := vendors.NewRepository(dbClient.DB())
	functionsRepo := functions.NewRepository(dbClient.DB())
	chatRepo := chat.NewRepository(dbClient.DB())
	mediaRepo := media.NewRepository(dbClient.DB())
	packingRepo := packing.NewRepository(dbClient.DB())
	notificationsRepo := notifications.NewRepository(dbClient.DB())
	auditRepo := audit.NewRepository(dbClient.DB())

	otpService, err := otp.NewService(otpStore, cfg.OTP)
	exitOn(logg, "otp service", err)

	authService, err := auth.NewService(usersRepo, sessionManager, otpService, mail, cfg.JWT, cfg.Password, logg)
	exitOn(logg, "auth service", err)

	usersService, err := users.NewService(usersRepo)
	exitOn(logg, "users service", err)

	membershipsService, err := memberships.NewService(membershipsRepo)
	exitOn(logg, "memberships service", err)

	weddingsService, err := weddings.NewService(dbClient, weddingsRepo, membershipsRepo)
	exitOn(logg, "weddings service", err)

	guestsService, err := guests.NewService(guestsRepo)
	exitOn(logg, "guests service", err)

	budgetService, err := budget.NewService(budgetRepo)
	exitOn(logg, "budget service", err)

	vendorsService, err := vendors.NewService(vendorsRepo, resolver)
	exitOn(logg, "vendors service", err)

	functionsService, err := functions.NewService(functionsRepo)
	exitOn(logg, "functions service", err)

	chatService, err := chat.NewService(chatRepo)
	exitOn(logg, "chat service", err)

	mediaService, err := media.NewService(dbClient, mediaRepo)
	exitOn(logg, "media service", err)

	packingService, err := packing.NewService(dbClient, packingRepo)
	exitOn(logg, "packing service", err)

	notificationsService, err := notifications.NewService(notificationsRepo, membershipsRepo, usersRepo, mail, logg)
	exitOn(logg, "notifications service", err)

	timelineService, err := timeline.NewService(weddingsRepo, functionsRepo)
	exitOn(logg, "timeline service", err)

	analyticsService, err := analytics.NewService(weddingsRepo, guestsRepo, budgetRepo, functionsRepo, packingRepo)
	exitOn(logg, "analytics service", err)

	auditService, err := audit.NewService(auditRepo, logg)
	exitOn(logg, "audit service", err)

	handler := routes.NewRouter(cfg, logg, dbClient, redisPinger, sessionManager, limiter, weddingsRepo, routes.Services{
		Auth:          authService,
		Users:         usersService,
		Weddings:      weddingsService,
		Memberships:   membershipsService,
		Guests:        guestsService,
		Budget:        budgetService,
		Vendors:       vendorsService,
		Functions:     functionsService,
		Chat:          chatService,
		Media:         mediaService,
		Packing:       packingService,
		Notifications: notificationsService,
		Timeline:      timelineService,
		Analytics:     analyticsService,
		Audit:         auditService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{Addr: addr, Handler: handler}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func exitOn(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
