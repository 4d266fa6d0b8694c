package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/authtodo/app/internal/config"
	"github.com/authtodo/app/internal/database"
	"github.com/authtodo/app/internal/handlers"
	"github.com/authtodo/app/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := database.Connect(ctx, cfg.MongoURL)
	cancel()
	if err != nil {
		log.Error("connect database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("disconnect database", "error", err)
		}
	}()

	db := client.Database(cfg.MongoDB)
	users := database.NewMongoUserStore(db)
	items := database.NewMongoItemStore(db)
	sessStore := session.NewMongoStore(db)

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = users.EnsureIndexes(ctx)
	if err == nil {
		err = sessStore.EnsureIndexes(ctx)
	}
	cancel()
	if err != nil {
		log.Error("ensure indexes", "error", err)
		os.Exit(1)
	}

	tmpl, err := handlers.LoadTemplates(cfg.TemplatesDir)
	if err != nil {
		log.Error("load templates", "error", err)
		os.Exit(1)
	}

	sessions := session.NewManager(sessStore, cfg.SessionSecret, cfg.SessionTTL)
	h := handlers.New(users, items, sessions, tmpl, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h.Routes(cfg.StaticDir),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
	log.Info("server stopped")
}
