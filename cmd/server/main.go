package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jvaldes/tablero/internal/analysis"
	"github.com/jvaldes/tablero/internal/config"
	"github.com/jvaldes/tablero/internal/db"
	"github.com/jvaldes/tablero/internal/ingestion"
	"github.com/jvaldes/tablero/internal/middleware"
	"github.com/jvaldes/tablero/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	logRepo := repository.NewUploadLogRepository(conn.Pool)
	issueRepo := repository.NewUploadIssueRepository(conn.Pool)
	recordRepo := repository.NewRecordRepository(conn.Pool)

	ingestService := ingestion.NewService(logRepo, issueRepo, recordRepo)
	ingestHandler := ingestion.NewHandler(ingestService, logRepo, issueRepo, recordRepo)

	summarizer := analysis.NewGeminiSummarizer(cfg.GeminiAPIKey, cfg.GeminiModel)
	analysisHandler := analysis.NewHandler(summarizer)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	router := chi.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	router.Mount("/api", ingestHandler.Routes())
	router.Mount("/api/ai", analysisHandler.Routes())

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", cfg.ServerAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
