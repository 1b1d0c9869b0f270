package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-estimate-ws/internal/config"
	"go-estimate-ws/internal/crm"
	"go-estimate-ws/internal/handler"
	"go-estimate-ws/internal/llm"
	"go-estimate-ws/internal/service"
	"go-estimate-ws/internal/store"
	"go-estimate-ws/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 3. External collaborators
	var crmClient crm.Client
	if cfg.CRMMode == "mock" {
		log.Println("CRM_MODE=mock: using the built-in CRM simulator")
		crmClient = crm.NewSimulator()
	} else {
		crmClient = crm.NewHubSpotClient(cfg.CRMBaseURL, cfg.CRMToken)
	}
	aiClient := llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	// 4. Dependency Injection (Wiring Layers)
	estimateStore := store.New()
	estimateService := service.NewEstimateService(estimateStore, crmClient, aiClient, wsHub)

	catalogHandler := handler.NewCatalogHandler(estimateService)
	estimateHandler := handler.NewEstimateHandler(estimateService)
	aiHandler := handler.NewAIHandler(estimateService)

	// 5. Catalog bootstrap: runs once, estimate operations are not blocked on it.
	bootstrapCtx, cancelBootstrap := context.WithCancel(context.Background())
	defer cancelBootstrap()
	go func() {
		if err := estimateService.BootstrapCatalog(bootstrapCtx); err != nil {
			log.Printf("Warning: catalog bootstrap failed: %v", err)
		}
	}()

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Estimate Builder v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// Catalog Routes
	api.Get("/catalog", catalogHandler.GetCatalog)
	api.Post("/catalog/products", catalogHandler.CreateProduct)
	api.Put("/catalog/products/:id/default-hours", catalogHandler.UpdateDefaultHours)

	// Estimate Routes
	api.Get("/estimate", estimateHandler.GetEstimate)
	api.Post("/estimate/items", estimateHandler.AddItem)
	api.Put("/estimate/items/:productId", estimateHandler.UpdateItemHours)
	api.Delete("/estimate/items/:productId", estimateHandler.RemoveItem)
	api.Post("/estimate/merge", estimateHandler.MergeSuggestions)
	api.Post("/estimate/submit", estimateHandler.Submit)

	// AI Routes
	api.Post("/ai/suggestions", aiHandler.Suggest)

	// Health
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancelBootstrap()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
