package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"

	"github.com/iliyamo/festival-schedule-planner/internal/config"
	"github.com/iliyamo/festival-schedule-planner/internal/database"
	"github.com/iliyamo/festival-schedule-planner/internal/handler"
	"github.com/iliyamo/festival-schedule-planner/internal/middleware"
	"github.com/iliyamo/festival-schedule-planner/internal/planner"
	"github.com/iliyamo/festival-schedule-planner/internal/queue"
	"github.com/iliyamo/festival-schedule-planner/internal/repository"
	"github.com/iliyamo/festival-schedule-planner/internal/router"
	"github.com/iliyamo/festival-schedule-planner/internal/schedule"
	queue_publisher "github.com/iliyamo/festival-schedule-planner/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env always wins
	cfg := config.Load()

	// The lineup CSV must parse at startup; a planner with no schedule is useless.
	holder, err := loadSchedule(cfg.ScheduleCSVPath)
	if err != nil {
		log.Fatalf("load schedule from %s: %v", cfg.ScheduleCSVPath, err)
	}
	log.Printf("schedule loaded: %d shows across %v", holder.Current().Len(), holder.Current().Days())

	// MySQL keeps attendance and comments for the whole group. When it is
	// unreachable we fall back to a local JSON snapshot so a single attendee
	// can still plan offline; accounts need the database, so auth routes are
	// only registered when it is up.
	var store planner.Store
	db, dbErr := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if dbErr != nil {
		log.Printf("database unavailable (%v), using local snapshot %s", dbErr, cfg.PlannerSnapshot)
		local, err := planner.OpenLocalStore(cfg.PlannerSnapshot)
		if err != nil {
			log.Fatalf("open local planner store: %v", err)
		}
		store = local
	} else {
		store = planner.NewSQLStore(db)
	}

	e := echo.New()
	e.HideBanner = true

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	var cacheMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	scheduleH := handler.NewScheduleHandler(holder, store)
	attendanceH := handler.NewAttendanceHandler(holder, store)
	commentH := handler.NewCommentHandler(holder, store)
	adminH := handler.NewAdminHandler(holder, store)

	router.RegisterPublic(e, scheduleH, cacheMW)
	router.RegisterPlanner(e, attendanceH, commentH, cfg.JWTSecret)
	router.RegisterOwner(e, adminH, cfg.JWTSecret)
	if db != nil {
		authH := handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db))
		router.RegisterAuth(e, authH, cfg.JWTSecret)
	}

	if cfg.ScheduleReloadCron != "" {
		startReloadJob(cfg.ScheduleReloadCron, cfg.ScheduleCSVPath, holder)
	}

	go func() {
		if err := queue.StartAttendanceConsumer(); err != nil {
			log.Printf("attendance consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// loadSchedule reads and parses the lineup CSV into a fresh holder.
func loadSchedule(path string) (*schedule.Holder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	store, err := schedule.Parse(string(data))
	if err != nil {
		return nil, err
	}
	return schedule.NewHolder(store), nil
}

// startReloadJob re-reads the CSV on the given cron expression and swaps the
// live schedule in place. Lineups change right up to the festival gates, so
// operators point SCHEDULE_CSV_PATH at a synced file and let the job pick up
// edits. A bad file keeps the previous schedule.
func startReloadJob(expr, path string, holder *schedule.Holder) {
	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("schedule reload: read %s: %v", path, err)
			return
		}
		store, err := schedule.Parse(string(data))
		if err != nil {
			log.Printf("schedule reload: parse: %v", err)
			return
		}
		holder.Swap(store)
		log.Printf("schedule reloaded: %d shows", store.Len())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishScheduleReloaded(ctx, queue.ScheduleReloadedEvent{
			Source:     "cron",
			Days:       store.Days(),
			ShowCount:  store.Len(),
			ReloadedAt: time.Now().UTC().Format(time.RFC3339),
		})
	})
	if err != nil {
		log.Printf("schedule reload job not started: %v", err)
		return
	}
	c.Start()
}
