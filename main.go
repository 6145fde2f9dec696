package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"tokennove.com/controllers"
	"tokennove.com/cron"
	"tokennove.com/db"
	"tokennove.com/middlewares"
	"tokennove.com/routes"
	"tokennove.com/services"
	"tokennove.com/types"

	_ "tokennove.com/docs"
)

//	@title			Portfolio Service
//	@version		1.0
//	@description	Position valuation and earnings reporting API

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, relying on process environment")
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db.Init()
	cron.StartScheduler()

	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", cfg.CORSAllowOrigin)
		c.Set("Access-Control-Allow-Methods", "GET")
		return c.Next()
	})
	app.Use(middlewares.RequestLogger)

	portfolioController := controllers.NewPortfolioController(cfg)
	routes.Setup(app, portfolioController)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})

	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// The table renderer is an external collaborator; its files are only
	// hosted here when present next to the binary.
	app.Static("/assets", "./assets")
	app.Static("/", "./index.html")

	log.Infof("Listening on %s", cfg.ListenPath)
	log.Fatal(app.Listen(cfg.ListenPath))
}

func loadConfig() (types.Config, error) {
	cfg := types.Config{
		ListenPath:      getenv("LISTEN_PATH", ":3000"),
		PriceAPIURL:     getenv("PRICE_API_URL", services.DefaultPriceAPIURL),
		WorkerLimit:     services.DefaultWorkerLimit,
		CORSAllowOrigin: getenv("CORS_ALLOW_ORIGIN", "*"),
	}

	if raw := os.Getenv("WORKER_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("WORKER_LIMIT must be an integer: %w", err)
		}
		cfg.WorkerLimit = limit
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
