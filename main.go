package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"card-duel-server/api"
	"card-duel-server/config"
	"card-duel-server/duel"
	"card-duel-server/loghandler"
	"card-duel-server/rooms"
	"card-duel-server/storage"
	"card-duel-server/ws"
)

func main() {
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stdout, slog.LevelInfo)))

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; using environment variables", "tag", "main")
	}

	cfg := config.Load()
	slog.Info("configuration loaded", "tag", "main",
		"wsPort", cfg.WSPort, "botDelayMs", cfg.BotDelayMS,
		"roomIdleTimeoutSec", cfg.RoomIdleTimeoutSec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional duel history store; the server runs fine without one.
	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connecting to database", "tag", "main", "err", err)
		os.Exit(1)
	}
	if store != nil {
		defer store.Close()
		slog.Info("duel history store enabled", "tag", "main")
	} else {
		slog.Info("DATABASE_URL not set; duel history disabled", "tag", "main")
	}

	if cfg.AuthBaseURL != "" {
		slog.Info("auth configured", "tag", "main", "baseUrl", cfg.AuthBaseURL)
	}

	registry := rooms.NewRegistry(cfg)
	if store != nil {
		registry.OnDuelEnd = func(duelID, roomID, p1Name, p2Name string, winner duel.Seat, turns, p1LP, p2LP int) {
			recordCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.RecordDuelEnd(recordCtx, duelID, roomID, p1Name, p2Name, winner, turns, p1LP, p2LP); err != nil {
				slog.Error("recording duel result", "tag", "main", "duel", duelID, "err", err)
			}
		}
	}
	go registry.Sweep(ctx)

	hub := ws.NewHub(cfg, registry)
	go hub.Run(ctx)

	apiHandler := api.NewHandler(cfg, historyStoreOrNil(store))

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/api/history", apiHandler.History)
	mux.HandleFunc("/api/leaderboard", apiHandler.Leaderboard)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.WSPort),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("card duel server listening", "tag", "main", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "tag", "main", "err", err)
		os.Exit(1)
	}
}

// historyStoreOrNil avoids handing a typed-nil *storage.Store to the API
// handler's interface field.
func historyStoreOrNil(store *storage.Store) storage.HistoryStore {
	if store == nil {
		return nil
	}
	return store
}
