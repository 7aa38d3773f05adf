package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apirest "github.com/kasuganosora/topdownrpg/sim/api/rest"
	"github.com/kasuganosora/topdownrpg/sim/api/sse"
	apows "github.com/kasuganosora/topdownrpg/sim/api/ws"
	"github.com/kasuganosora/topdownrpg/sim/broadcast"
	"github.com/kasuganosora/topdownrpg/sim/cache"
	"github.com/kasuganosora/topdownrpg/sim/config"
	dbadapter "github.com/kasuganosora/topdownrpg/sim/db"
	"github.com/kasuganosora/topdownrpg/sim/game/world"
	"github.com/kasuganosora/topdownrpg/sim/journal"
	mw "github.com/kasuganosora/topdownrpg/sim/middleware"
	"github.com/kasuganosora/topdownrpg/sim/model"
	"github.com/kasuganosora/topdownrpg/sim/resource"
	"github.com/kasuganosora/topdownrpg/sim/scheduler"
)

func main() {
	// No argument: built-in defaults.
	cfgPath := ""
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- Content + Simulation ----
	content := resource.Default()
	if cfg.Simulation.ContentPath != "" {
		content, err = resource.Load(cfg.Simulation.ContentPath)
		if err != nil {
			log.Fatalf("content: %v", err)
		}
	}
	sim, err := world.New(content, world.Options{
		DayLength:   cfg.Simulation.DayLength(),
		RerollOrbit: cfg.Simulation.RerollOrbitDirection,
		Seed:        cfg.Simulation.Seed,
	}, logger)
	if err != nil {
		log.Fatalf("simulation: %v", err)
	}
	room := world.NewRoom(sim, cfg.Simulation.SnapshotEveryTicks, logger)

	// ---- Cache / PubSub ----
	c, err := cache.NewCache(cfg.Cache)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}
	pubsub, err := cache.NewPubSub(cfg.Cache)
	if err != nil {
		log.Fatalf("pubsub: %v", err)
	}
	logger.Info("Cache initialized", zap.Bool("redis", cfg.Cache.RedisAddr != ""))

	pub := broadcast.New(c, pubsub, cfg.Cache.QuestLogMax, logger)
	defer pub.Stop()
	room.OnSnapshot(pub.Snapshot)
	room.OnEvents(pub.Events)

	// ---- Journal ----
	var journalSvc *journal.Service
	db, err := dbadapter.Open(cfg.Journal)
	switch {
	case errors.Is(err, dbadapter.ErrDisabled):
		logger.Info("journal disabled")
	case err != nil:
		log.Fatalf("db: %v", err)
	default:
		if err := model.AutoMigrate(db); err != nil {
			log.Fatalf("db migrate: %v", err)
		}
		journalSvc = journal.New(db, cfg.Journal, logger)
		defer journalSvc.Stop(context.Background())
		room.OnEvents(journalSvc.Record)
		logger.Info("DB initialized", zap.String("mode", cfg.Journal.Mode))
	}

	// ---- Scheduler ----
	sched := scheduler.New(logger)
	defer sched.Stop()
	sched.AddTicker("sim_step", cfg.Simulation.Tick(), func(dt time.Duration) {
		room.Tick(dt)
	})

	// ---- WebSocket hub ----
	hub := apows.NewHub(logger)
	if err := hub.Relay(ctx, pubsub, map[string]string{
		broadcast.SnapshotChannel: apows.TypeSnapshot,
		broadcast.QuestChannel:    apows.TypeQuest,
	}); err != nil {
		log.Fatalf("relay: %v", err)
	}
	wsRouter := apows.NewRouter(logger)
	apows.RegisterHandlers(wsRouter, room)

	// ---- HTTP ----
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(mw.TraceID(), mw.Logger(logger, "/api/health"), mw.Recovery(logger))

	worldH := apirest.NewWorldHandler(room, c, logger)
	adminH := apirest.NewAdminHandler(room, sched, hub, logger)
	questH := apirest.NewQuestHandler(pub, journalSvc, logger)

	api := r.Group("/api")
	api.Use(mw.RateLimitFromConfig(cfg.Security))
	{
		api.GET("/health", adminH.Health)
		api.GET("/snapshot", worldH.Snapshot)
		api.GET("/grid", worldH.Grid)
		api.GET("/path", worldH.Path)
		api.GET("/quests/log", questH.Log)
		api.GET("/journal", questH.Journal)

		adminG := api.Group("/admin")
		adminG.GET("/metrics", adminH.Metrics)
		adminG.GET("/tasks", adminH.Tasks)
	}

	wsH := apows.NewHandler(hub, wsRouter, cfg.Server.AllowedOrigins, logger)
	r.GET("/ws", wsH.ServeWS)

	sseH := sse.NewHandler(pubsub, broadcast.QuestChannel, logger)
	r.GET("/sse/quests", sseH.ServeSSE)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server: %v", err)
	}
	logger.Info("Server stopped")
}
