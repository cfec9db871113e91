package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vkarpenko/halfcourt/internal/game"
	"github.com/vkarpenko/halfcourt/internal/middleware"
	"github.com/vkarpenko/halfcourt/internal/ws"
)

// securityHeaders wraps a handler with common security response headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// matchManager turns accepted connections into rooms against the AI.
type matchManager struct {
	hub *ws.Hub
	log *zap.SugaredLogger
}

func (m *matchManager) CreateRoom(c *ws.Conn, opts ws.RoomOptions) {
	settings := game.DefaultSettings()
	settings.Difficulty = game.DifficultyByName(opts.Difficulty)
	settings.Scoring = game.ScoringByName(opts.Scoring)
	if opts.ShotClockSeconds >= 0 {
		settings.ShotClockSeconds = opts.ShotClockSeconds
	}
	if opts.TargetScore > 0 {
		settings.TargetScore = opts.TargetScore
	}
	if opts.Seed != 0 {
		settings.Seed = opts.Seed
	} else {
		settings.Seed = time.Now().UnixNano()
	}

	room := game.NewRoom(c, settings, m.log.With("conn", c.ID))
	room.Start(context.Background())
	go func() {
		select {
		case <-room.Done():
		case <-c.Done():
		}
		m.hub.RoomEnded()
	}()
}

func main() {
	_ = godotenv.Load()

	var logger *zap.Logger
	var err error
	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	var originPatterns []string
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		originPatterns = strings.Split(origins, ",")
	}

	// Max 4 conns/IP, 120 msgs/sec/IP
	limiter := middleware.NewIPRateLimiter(4, 120, time.Second)

	manager := &matchManager{log: log}
	hub := ws.NewHub(manager, limiter, originPatterns, log)
	manager.hub = hub

	r := chi.NewRouter()
	r.Use(securityHeaders)
	r.Get("/ws", hub.HandleWS)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(hub.Stats())
	})

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Infow("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Infow("halfcourt server starting", "port", port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalw("server error", "err", err)
	}
	log.Infow("server stopped")
}
