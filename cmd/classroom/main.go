package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/strhzy/classroom-course/internal/app"
	"github.com/strhzy/classroom-course/internal/config"
	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/jobs"
	"github.com/strhzy/classroom-course/internal/logging"
	"github.com/strhzy/classroom-course/internal/notify"
	"github.com/strhzy/classroom-course/internal/observability"
)

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Ошибка логгера: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "classroom-course")
	if err != nil {
		lg.Sugar.Warnw("sentry init failed", "err", err)
	}
	defer flush()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		lg.Sugar.Fatalw("Ошибка подключения к БД", "err", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		lg.Sugar.Fatalw("Миграция не удалась", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Бутстрап суперпользователей из ADMIN_IDS
	for _, id := range cfg.AdminIDs {
		if err := db.EnsureSuperuser(ctx, database, id, fmt.Sprintf("admin-%d", id)); err != nil {
			lg.Sugar.Errorw("superuser bootstrap", "telegram_id", id, "err", err)
		}
	}

	var notifier notify.Notifier
	if cfg.BotToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.BotToken)
		if err != nil {
			lg.Sugar.Fatalw("Ошибка запуска бота", "err", err)
		}
		notifier = tg
		lg.Sugar.Infow("notifications via telegram")
	} else {
		notifier = notify.NewLogNotifier(lg.Named("notify"))
		lg.Sugar.Infow("BOT_TOKEN не задан, уведомления только в лог")
	}

	app.StartHTTP(ctx, cfg.HTTPAddr, database)
	lg.Sugar.Infow("http started", "addr", cfg.HTTPAddr)

	runner := jobs.New(ctx)
	jobs.StartNotificationDispatcher(runner, database, notifier, 30*time.Second)

	<-ctx.Done()
	lg.Sugar.Infow("shutdown")
}
