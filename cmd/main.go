package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"unicare/backend/internal/api/handler"
	"unicare/backend/internal/booking"
	"unicare/backend/internal/config"
	"unicare/backend/internal/crisis"
	"unicare/backend/internal/hub"
	"unicare/backend/internal/identity"
	"unicare/backend/internal/models"
	"unicare/backend/internal/peer"
	"unicare/backend/internal/rooms"
	"unicare/backend/internal/storage"
	"unicare/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.TriageForm{},
		&models.SupportRoom{},
		&models.SupportMessage{},
		&models.Booking{},
		&models.PeerApplication{},
		&models.CrisisAlert{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting UniCare Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	// 1. Dependencies and storage
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	// 2. Domain services
	var notifier crisis.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramStaffChatID != 0 {
		tgNotifier, err := telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramStaffChatID)
		if err != nil {
			log.Fatalf("Failed to start crisis notifier: %v", err)
		}
		notifier = tgNotifier
	} else {
		log.Println("Telegram staff notifications disabled (no token/chat configured).")
	}

	crisisSvc := crisis.NewService(s, notifier)
	roomSvc := rooms.NewService(s, crisisSvc)
	identitySvc := identity.NewService(s)
	bookingSvc := booking.NewService(s)
	peerSvc := peer.NewService(s)

	// 3. Long-running goroutines
	h := hub.NewManagerService(roomSvc)
	sweeper := rooms.NewSweeper(roomSvc, cfg.RoomWaitingExpiry, config.WaitingSweepInterval)
	go h.Run()
	go sweeper.Run()

	// 4. Gin routing
	r := gin.Default()
	api := handler.NewHandler(identitySvc, roomSvc, bookingSvc, peerSvc, crisisSvc, h, cfg.JWTSecret)

	r.POST("/auth/register", api.Register)
	r.POST("/auth/login", api.Login)
	r.GET("/ws", api.ServeWebSocket)

	authed := r.Group("/", api.RequireAuth())
	{
		authed.GET("/profile", api.GetProfile)
		authed.PATCH("/profile", api.UpdateProfile)
		authed.POST("/profile/password", api.ChangePassword)
		authed.DELETE("/profile", api.DeleteAccount)

		authed.POST("/triage", api.SubmitTriage)
		authed.GET("/triage", api.ListTriageHistory)

		authed.GET("/rooms", api.ListRooms)
		authed.GET("/rooms/waiting", api.ListWaitingRooms)
		authed.GET("/rooms/:id", api.GetRoom)
		authed.POST("/rooms/:id/claim", api.ClaimRoom)
		authed.POST("/rooms/:id/end", api.EndRoom)
		authed.GET("/rooms/:id/messages", api.GetMessages)
		authed.POST("/rooms/:id/messages", api.AppendMessage)

		authed.POST("/bookings", api.CreateBooking)
		authed.GET("/bookings", api.ListBookings)
		authed.POST("/bookings/:id/cancel", api.CancelBooking)

		authed.POST("/applications", api.SubmitPeerApplication)
		authed.GET("/applications", api.ListPeerApplications)
		authed.POST("/applications/:id/review", api.ReviewPeerApplication)

		authed.GET("/alerts", api.ListAlerts)
		authed.POST("/alerts/:id/status", api.SetAlertStatus)
	}

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
