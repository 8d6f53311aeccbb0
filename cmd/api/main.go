package main

import (
	"context"
	"log"
	"time"

	config "github.com/anjiri1684/exam_qr_masking/configs"
	"github.com/anjiri1684/exam_qr_masking/database"
	"github.com/anjiri1684/exam_qr_masking/handlers"
	"github.com/anjiri1684/exam_qr_masking/jobs"
	"github.com/anjiri1684/exam_qr_masking/notifications"
	"github.com/anjiri1684/exam_qr_masking/reports"
	"github.com/anjiri1684/exam_qr_masking/repositories"
	"github.com/anjiri1684/exam_qr_masking/routes"
	"github.com/anjiri1684/exam_qr_masking/services"
	"github.com/anjiri1684/exam_qr_masking/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func newStore() services.Store {
	if config.Config("STORE") == "memory" {
		log.Println("⚠️ Using in-memory store, data is lost on restart")
		return repositories.NewMemoryStore()
	}
	database.ConnectDB()
	database.Migrate()
	return repositories.NewGormStore(database.DB)
}

func main() {
	secret := config.Config("JWT_SECRET")
	if secret == "" {
		log.Fatal("🔥 JWT_SECRET must be set")
	}

	store := newStore()
	notifications.InitEmailService()

	auth := services.NewAuthService(store, []byte(secret), services.DefaultTokenTTL)
	exams := services.NewExamService(store)
	grading := services.NewGradingService(store)

	if err := auth.SeedAdmin(context.Background(),
		config.ConfigDefault("ADMIN_NAME", "Administrator"),
		config.Config("ADMIN_EMAIL"),
		config.Config("ADMIN_PASSWORD"),
	); err != nil {
		log.Fatalf("🔥 %v", err)
	}

	var archiver *services.Archiver
	if url := config.Config("CLOUDINARY_URL"); url != "" {
		a, err := services.NewArchiver(url)
		if err != nil {
			log.Printf("⚠️ Archive storage disabled: %v", err)
		} else {
			archiver = a
		}
	}

	hub := websocket.NewHub()
	go hub.Run()

	c := cron.New()
	if _, err := c.AddFunc(config.ConfigDefault("STATS_CRON", "*/15 * * * *"), jobs.ReportPendingReveals(exams)); err != nil {
		log.Fatalf("🔥 Invalid STATS_CRON: %v", err)
	}
	c.Start()
	defer c.Stop()
	log.Println("✅ Cron job for pending reveals scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Exam QR Masking",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  60 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigDefault("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length, Content-Disposition",
		MaxAge:           86400,
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.Register(app, routes.Handlers{
		Auth:      handlers.NewAuthHandler(auth, config.Config("APP_ENV") == "production"),
		Exams:     handlers.NewExamHandler(exams, grading, hub, reports.ChromeRenderer{}, archiver),
		Marks:     handlers.NewMarkHandler(exams, grading, hub),
		Students:  handlers.NewStudentHandler(exams),
		Admin:     handlers.NewAdminHandler(exams),
		Dashboard: handlers.NewDashboardHandler(hub),
	}, routes.Options{
		JWTSecret:      []byte(secret),
		ClaimRateLimit: config.ConfigInt("CLAIM_RATE_LIMIT", 20),
	})

	port := config.ConfigDefault("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
