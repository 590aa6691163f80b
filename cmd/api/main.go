package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"officecal/internal/config"
	"officecal/internal/database"
	"officecal/internal/middleware"
	"officecal/internal/modules/auth"
	"officecal/internal/modules/booking"
	"officecal/internal/modules/employee"
	"officecal/internal/modules/event"
	"officecal/internal/modules/notify"
	"officecal/internal/modules/realtime"
	"officecal/internal/modules/room"
	"officecal/internal/modules/setting"
	jwtsvc "officecal/internal/pkg/jwt"
	"officecal/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	employeeRepo := repository.NewEmployeeRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	eventRepo := repository.NewEventRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := realtime.NewHub()
	defer hub.Close()

	notifyService := notify.NewService(notificationRepo, hub, cfg.NotifRetention)

	authService := auth.NewService(employeeRepo, j)
	employeeService := employee.NewService(employeeRepo)
	roomService := room.NewService(roomRepo)
	bookingService := booking.NewService(bookingRepo, roomRepo, notifyService)
	eventService := event.NewService(eventRepo, roomRepo, notifyService)
	settingService := setting.NewService(settingRepo)

	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	roomHandler := room.NewHandler(roomService)
	bookingHandler := booking.NewHandler(bookingService)
	eventHandler := event.NewHandler(eventService)
	settingHandler := setting.NewHandler(settingService)
	notifyHandler := notify.NewHandler(notifyService)
	realtimeHandler := realtime.NewHandler(hub)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			employeeHandler.RegisterRoutes(protected)
			roomHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			eventHandler.RegisterRoutes(protected)
			settingHandler.RegisterRoutes(protected)
			notifyHandler.RegisterRoutes(protected)
			realtimeHandler.RegisterRoutes(protected)

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				employeeHandler.RegisterAdminRoutes(admin)
				roomHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.CleanupSchedule, func() {
		notifyService.Sweep(context.Background())
	}); err != nil {
		log.Fatalf("invalid cleanup schedule %q: %v", cfg.CleanupSchedule, err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGraceTime)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
