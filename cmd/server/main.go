package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formforge/internal/cache"
	"formforge/internal/config"
	"formforge/internal/repository"
	"formforge/internal/service"
	"formforge/internal/transport/rest"
	"formforge/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	aiConfig := config.DefaultAIConfig()
	if aiConfig.IsEnabled() {
		log.Printf("AI generation enabled (model %s)", aiConfig.Model)
	} else {
		log.Println("AI generation disabled (GROQ_API_KEY not set)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	formRepo := repository.NewFormRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	responseRepo := repository.NewResponseRepo(db)

	// Initialize caches
	formCache := cache.NewFormCache(rdb)
	scoreboard := cache.NewScoreboardCache(rdb)
	statsCache := cache.NewStatsCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWTSecret)
	formSvc := service.NewFormService(formRepo, questionRepo, responseRepo, formCache, scoreboard)
	responseSvc := service.NewResponseService(responseRepo, formRepo, formSvc, scoreboard)
	statsSvc := service.NewStatsService(formRepo, responseRepo, statsCache)
	aiSvc := service.NewAIService(aiConfig, formSvc)

	// Inject notifier (wsHub implements service.Notifier)
	responseSvc.SetNotifier(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		FormService:     formSvc,
		ResponseService: responseSvc,
		StatsService:    statsSvc,
		AIService:       aiSvc,
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/session")
		log.Println("  POST/GET/DELETE /v1/forms")
		log.Println("  POST /v1/responses")
		log.Println("  GET  /v1/responses/single/{responseId}")
		log.Println("  GET  /v1/forms/{id}/scoreboard")
		log.Println("  POST /v1/ai/generate")
		log.Println("  WS   /v1/ws/forms/{formId}/watch")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
