package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/robfig/cron/v3"
	config "github.com/skillshare/skillshare_hub/configs"
	"github.com/skillshare/skillshare_hub/database"
	"github.com/skillshare/skillshare_hub/handlers"
	"github.com/skillshare/skillshare_hub/jobs"
	"github.com/skillshare/skillshare_hub/middleware"
	"github.com/skillshare/skillshare_hub/routes"
	"github.com/skillshare/skillshare_hub/storage"
)

func main() {
	var store storage.Storage
	var sessionStorage fiber.Storage

	backend := config.ConfigOr("STORAGE_BACKEND", "postgres")
	switch backend {
	case "memory":
		store = storage.NewMemoryStorage()
		log.Println("✅ Using in-memory storage backend")
	case "postgres":
		db, err := database.Connect(config.Config("DATABASE_URL"))
		if err != nil {
			log.Fatalf("🔥 %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("🔥 %v", err)
		}
		store = storage.NewPostgresStorage(db)
		sessionStorage = database.NewSessionStorage(db)

		c := cron.New()
		c.AddFunc("*/10 * * * *", jobs.CleanupExpiredAuthSessions(db))
		go c.Start()
		log.Println("✅ Cron job for auth session cleanup scheduled successfully.")
	default:
		log.Fatalf("🔥 Unknown STORAGE_BACKEND: %q", backend)
	}

	sessions := session.New(session.Config{
		Storage:        sessionStorage,
		Expiration:     7 * 24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSecure:   config.ConfigOr("COOKIE_SECURE", "false") == "true",
		CookieSameSite: "Lax",
	})

	app := fiber.New(fiber.Config{
		AppName:       "SkillShareHub",
		CaseSensitive: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
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
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept",
		AllowMethods:  "GET, POST, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	h := handlers.New(store, sessions)
	auth := middleware.NewAuth(sessions, store)

	routes.AuthRoutes(app, h, auth)
	routes.SessionRoutes(app, h, auth)
	routes.BookingRoutes(app, h, auth)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.ConfigOr("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
