package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"retro-taskmaster/internal/bot"
	"retro-taskmaster/internal/config"
	"retro-taskmaster/internal/httpapi"
	"retro-taskmaster/internal/repository"
	"retro-taskmaster/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.StoreBackend, cfg.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	if err := repository.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	masterRepo := repository.NewMasterCategoryRepository(db)

	taskSvc := service.NewTaskService(taskRepo)
	categorySvc := service.NewCategoryService(categoryRepo, masterRepo)
	summarySvc := service.NewSummaryService(taskRepo)

	hub := httpapi.NewHub()
	server := httpapi.NewServer(taskSvc, categorySvc, summarySvc, hub, cfg.AllowedOrigins)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return server.ListenAndServe(gctx, cfg.Addr())
	})

	if cfg.BotEnabled() {
		telegramBot, err := bot.New(cfg.TelegramToken, cfg.TelegramChatID, taskSvc, categorySvc, summarySvc, hub)
		if err != nil {
			log.Fatalf("bot: %v", err)
		}

		if cfg.ReportsEnabled() {
			scheduler, err := scheduleReports(cfg, telegramBot)
			if err != nil {
				log.Fatalf("schedule reports: %v", err)
			}
			scheduler.Start()
			defer scheduler.Stop()
		}

		g.Go(func() error {
			return telegramBot.Start(gctx)
		})
	}

	log.Printf("Taskmaster started (store=%s).", cfg.StoreBackend)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}

// scheduleReports registers the daily and the repeating report jobs that
// the configuration enables.
func scheduleReports(cfg config.Config, telegramBot *bot.Bot) (*service.SchedulerService, error) {
	scheduler := service.NewSchedulerService(time.Local)
	job := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := telegramBot.SendDailyReport(jobCtx, cfg.TelegramChatID); err != nil {
			log.Printf("report: %v", err)
		}
	}

	if cfg.ReportTime != "" {
		if _, err := scheduler.ScheduleDaily(cfg.ReportTime, job); err != nil {
			return nil, err
		}
		log.Printf("[info] daily report scheduled at %s", cfg.ReportTime)
	}
	if interval := cfg.ReportInterval(); interval > 0 {
		if _, err := scheduler.ScheduleInterval(interval, job); err != nil {
			return nil, err
		}
		log.Printf("[info] report scheduled every %s", interval)
	}
	return scheduler, nil
}
