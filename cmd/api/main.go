package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/foodgram-app/backend/config"
	"github.com/foodgram-app/backend/database"
	"github.com/foodgram-app/backend/database/repositories"
	"github.com/foodgram-app/backend/handlers"
	"github.com/foodgram-app/backend/logger"
	"github.com/foodgram-app/backend/middleware"
	"github.com/foodgram-app/backend/models"
	"github.com/foodgram-app/backend/services"
)

var version = "dev"

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	customHandler := logger.NewHandler("Foodgram", cfg.Log.Level)
	slog.SetDefault(slog.New(customHandler))

	logger.LogSystem("Starting Foodgram API",
		slog.String("version", version),
		slog.String("address", cfg.Server.Address()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.LogSystem("Connecting to database...")
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		logger.LogError("Failed to connect to database", err)
		os.Exit(1)
	}
	if err := db.InitializeSchema(ctx); err != nil {
		logger.LogError("Failed to initialize schema", err)
		os.Exit(1)
	}
	logger.LogSystem("Database connected successfully")

	repos := models.NewRepositories(
		repositories.NewUserRepository(db.BunDB()),
		repositories.NewTagRepository(db.BunDB()),
		repositories.NewIngredientRepository(db.BunDB()),
		repositories.NewRecipeRepository(db.BunDB()),
		repositories.NewFavoriteRepository(db.BunDB()),
		repositories.NewShoppingCartRepository(db.BunDB()),
		repositories.NewSubscriptionRepository(db.BunDB()),
		repositories.NewTokenRepository(db.BunDB()),
	)

	storage, err := services.NewS3Storage(cfg.Storage)
	if err != nil {
		logger.LogError("Failed to initialize storage", err)
		os.Exit(1)
	}

	authService, err := services.NewAuthService(repos, cfg.Auth)
	if err != nil {
		logger.LogError("Failed to initialize auth service", err)
		os.Exit(1)
	}
	userService := services.NewUserService(repos, storage)
	recipeService := services.NewRecipeService(repos, storage)

	app := fiber.New(fiber.Config{
		AppName:      "Foodgram API",
		ServerHeader: "Foodgram",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggingMiddleware())

	webApp := &handlers.WebApp{
		Config:        cfg,
		DB:            db,
		Repos:         repos,
		Storage:       storage,
		AuthService:   authService,
		UserService:   userService,
		RecipeService: recipeService,
		Version:       version,
	}

	setupRoutes(app, webApp)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Server.Address()); err != nil {
			logger.LogError("Failed to start server", err)
		}
	}()

	<-c
	logger.LogSystem("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.LogError("Server shutdown error", err)
	}

	db.Close()
	logger.LogSystem("Server shutdown complete")
}
