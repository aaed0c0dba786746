package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bilart2005/mai-schedule-project/config"
	"github.com/bilart2005/mai-schedule-project/internal/api"
	"github.com/bilart2005/mai-schedule-project/internal/handlers"
	"github.com/bilart2005/mai-schedule-project/internal/refdata"
	"github.com/bilart2005/mai-schedule-project/internal/routes"
	"github.com/bilart2005/mai-schedule-project/internal/session"
)

func main() {
	// .env удобен при локальной разработке; в бою настройки приходят из окружения.
	if err := godotenv.Load(); err == nil {
		slog.Info("Настройки загружены из .env")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.ConnectRedis(ctx, cfg.RedisAddr)
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Ошибка закрытия соединения с Redis", "error", err)
			}
		}()
	}

	sess := session.New()
	client := api.New(cfg.BackendURL, cfg.HTTPTimeout, sess)
	ref := refdata.New(client, rdb, cfg.RefdataTTL)

	r := gin.Default()
	r.LoadHTMLGlob(cfg.TemplateDir)
	routes.Setup(r, handlers.New(client, sess, ref), sess)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Фронтенд расписания запущен", "addr", cfg.ListenAddr, "backend", cfg.BackendURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Ошибка HTTP-сервера", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Ошибка остановки сервера", "error", err)
	}
}
