package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"lg/gym-buddy-go-api/energy"
)

func main() {
	log.SetPrefix("gym-buddy-api: ")

	// .env is optional in deployed environments where variables are injected.
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] no .env loaded: %v", err)
	}
	cfg := loadConfig()

	pool := getDBPool(cfg.DatabaseURL)
	defer pool.Close()

	h := newHandler(pool, energy.DefaultCatalog(), cfg)

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           corsHandler(cfg.CORSOrigins).Handler(router),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("[main] listening on %s", cfg.HTTPAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
	log.Printf("[main] stopped")
}

// corsHandler allows the mobile and web clients to call the API with a bearer
// token. A single "*" origin allows any origin.
func corsHandler(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         600,
	})
}
