package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/jvoverseas/intake_backend/config"
	"github.com/jvoverseas/intake_backend/controllers"
	"github.com/jvoverseas/intake_backend/middleware"
	"github.com/jvoverseas/intake_backend/repositories"
	"github.com/jvoverseas/intake_backend/routes"
	"github.com/jvoverseas/intake_backend/services/adminauth"
	"github.com/jvoverseas/intake_backend/services/chatbot"
	"github.com/jvoverseas/intake_backend/services/mailer"
	"github.com/jvoverseas/intake_backend/services/notification"
	"github.com/jvoverseas/intake_backend/websocket"
)

func main() {
	cfg := config.Load()
	log.SetLevel(cfg.LogLvl())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	client, err := config.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	db := client.Database(cfg.DBName)
	config.SetupCollections(ctx, db)

	userRepo := repositories.NewUserRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	recordRepo := repositories.NewEligibilityRecordRepository(db)

	// Email delivery
	var deliveryLog mailer.DeliveryLog = mailer.NopDeliveryLog{}
	redisClient := config.ConnectRedis(ctx, cfg)
	if redisClient != nil {
		deliveryLog = mailer.NewRedisDeliveryLog(redisClient, mailer.DefaultDeliveryLogKey, mailer.DefaultDeliveryLogMax)
	}

	mailOpts := []mailer.Option{mailer.WithDeliveryLog(deliveryLog)}
	if logo, err := mailer.LoadLogo(cfg.Email.LogoPath); err != nil {
		log.Warnf("Email logo not loaded, sending without it: %v", err)
	} else {
		mailOpts = append(mailOpts, mailer.WithLogo(logo))
	}
	selector := mailer.NewFromConfig(cfg.Email, mailOpts...)
	selector.Initialize(ctx)

	dispatcher := notification.NewDispatcher(notification.DefaultWorkers)
	notifier := notification.NewNotifier(notification.NewTemplater(notification.DefaultBrand), dispatcher, selector)

	auth := adminauth.NewService(userRepo, notifier,
		func(userID, role string) (string, error) {
			return middleware.GenerateJWT(cfg.JWTSecret, userID, role, adminauth.SessionTTL)
		},
		adminauth.WithProduction(cfg.IsProduction()),
	)

	// Create WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.LogLvl())
	e.Validator = controllers.NewValidator()

	rateLimiter := middleware.NewRateLimiter()
	go rateLimiter.Cleanup(ctx, time.Minute)

	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS(cfg))
	e.Use(middleware.SecurityHeaders(middleware.SecurityConfig{HSTS: cfg.IsProduction()}))
	e.Use(echoMiddleware.BodyLimit("1M"))
	e.Use(rateLimiter.RateLimit())
	if cfg.IsProduction() {
		e.Use(httpsRedirect())
	}

	routes.SetupRoutes(e, cfg.JWTSecret, userRepo, routes.Controllers{
		Public: controllers.NewPublicController(leadRepo, recordRepo, notifier, wsHub, chatbot.NewResponder(chatbot.DefaultKnowledgeBase), cfg.IsDevelopment()),
		Admin:  controllers.NewAdminController(auth, leadRepo, selector, wsHub),
		CRM:    controllers.NewCRMController(),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP shutdown: %v", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Errorf("Pending emails abandoned: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Errorf("MongoDB disconnect: %v", err)
	}
}

func httpsRedirect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("X-Forwarded-Proto") == "http" {
				return c.Redirect(http.StatusMovedPermanently, "https://"+c.Request().Host+c.Request().RequestURI)
			}
			return next(c)
		}
	}
}
