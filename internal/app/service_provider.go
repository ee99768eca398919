package app

import (
	"context"
	"errors"
	eventsAPI "slot_machine/internal/api/events"
	sessionAPI "slot_machine/internal/api/session"
	"slot_machine/internal/config"
	"slot_machine/internal/config/env"
	"slot_machine/internal/event"
	"slot_machine/internal/logger"
	"slot_machine/internal/middleware"
	"slot_machine/internal/model"
	"slot_machine/internal/repository"
	"slot_machine/internal/repository/spin_repo"
	"slot_machine/internal/repository/stats_repo"
	"slot_machine/internal/service"
	"slot_machine/internal/service/payline"
	"slot_machine/internal/service/reel"
	"slot_machine/internal/service/session"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const memoryJournalCapacity = 1000

type ServiceProvider struct {
	// Configs
	engineCfg config.EngineConfig
	httpCfg   config.HTTPConfig
	rateCfg   config.RateLimitConfig
	logCfg    config.LogConfig

	logger *zap.Logger

	// Database, необязательна
	pgConfig  config.PGConfig
	dbClient  *pgxpool.Pool
	txManager trm.Manager

	// Redis, необязателен
	redisCfg    config.RedisConfig
	redisClient redis.UniversalClient

	// Engine bits
	reels     []*reel.Reel
	evaluator *payline.Evaluator

	// Repositories
	journal   repository.SpinRepository
	statsRepo repository.StatsRepository

	// Events
	registry *prometheus.Registry
	hub      *eventsAPI.Hub
	bus      *event.Bus

	// Session bits
	sessionServ service.SessionService
	driver      *session.Driver
	sessionHand *sessionAPI.Handler

	// Router
	limiter *middleware.RateLimiter
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.logger == nil {
		l, err := logger.New(sp.LogCfg().Level(), sp.LogCfg().JSON())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.logger = l
	}
	return sp.logger
}

func (sp *ServiceProvider) EngineCfg() config.EngineConfig {
	if sp.engineCfg == nil {
		cfg, err := env.NewEngineConfigFromYAML(env.ConfigPath())
		if err != nil {
			panic("failed to get engine config: " + err.Error())
		}
		sp.engineCfg = cfg
	}
	return sp.engineCfg
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) RateLimitCfg() config.RateLimitConfig {
	if sp.rateCfg == nil {
		cfg, err := env.NewRateLimitConfig()
		if err != nil {
			panic("failed to get rate limit config: " + err.Error())
		}
		sp.rateCfg = cfg
	}
	return sp.rateCfg
}

// PgConfig nil, если PG_DSN не задан
func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if errors.Is(err, env.ErrNotConfigured) {
			return nil
		}
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

// RedisCfg nil, если REDIS_ADDR не задан
func (sp *ServiceProvider) RedisCfg() config.RedisConfig {
	if sp.redisCfg == nil {
		cfg, err := env.NewRedisConfig()
		if errors.Is(err, env.ErrNotConfigured) {
			return nil
		}
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisCfg = cfg
	}
	return sp.redisCfg
}

func (sp *ServiceProvider) RedisClient(ctx context.Context) redis.UniversalClient {
	if sp.redisClient == nil {
		rdb := redis.NewClient(&redis.Options{Addr: sp.RedisCfg().Addr()})
		if err := rdb.Ping(ctx).Err(); err != nil {
			panic("failed to ping redis: " + err.Error())
		}
		sp.redisClient = rdb
	}
	return sp.redisClient
}

func (sp *ServiceProvider) Reels() []*reel.Reel {
	if sp.reels == nil {
		cfg := sp.EngineCfg()
		reels, err := reel.NewSet(cfg.Reels(), reel.ConfigFrom(cfg), model.AllSymbols, cfg.Seed())
		if err != nil {
			panic("failed to create reels: " + err.Error())
		}
		sp.reels = reels
	}
	return sp.reels
}

func (sp *ServiceProvider) Evaluator() *payline.Evaluator {
	if sp.evaluator == nil {
		cfg := sp.EngineCfg()
		e, err := payline.NewEvaluator(payline.DefaultPaylines(), cfg.Reels(), cfg.VisibleRows())
		if err != nil {
			panic("failed to create payline evaluator: " + err.Error())
		}
		sp.evaluator = e
	}
	return sp.evaluator
}

// Journal пишет в Postgres, если он настроен, иначе держит последние спины в памяти
func (sp *ServiceProvider) Journal(ctx context.Context) repository.SpinRepository {
	if sp.journal == nil {
		if sp.PgConfig() != nil {
			sp.journal = spin_repo.NewSpinRepository(sp.DBClient(ctx), sp.TXManager(ctx))
		} else {
			sp.Logger().Info("PG_DSN not set, spin journal kept in memory")
			sp.journal = spin_repo.NewMemoryRepository(memoryJournalCapacity)
		}
	}
	return sp.journal
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		target, err := session.ExpectedRTP(sp.Evaluator(), model.AllSymbols)
		if err != nil {
			panic("failed to compute expected rtp: " + err.Error())
		}
		sp.Logger().Info("expected rtp", zap.String("rtp", target.StringFixed(2)))
		sp.statsRepo = stats_repo.NewStatsRepository(target, sp.EngineCfg().StatsWindow(), sp.Logger())
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) Registry() *prometheus.Registry {
	if sp.registry == nil {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		sp.registry = reg
	}
	return sp.registry
}

func (sp *ServiceProvider) Hub() *eventsAPI.Hub {
	if sp.hub == nil {
		sp.hub = eventsAPI.NewHub(sp.Logger())
	}
	return sp.hub
}

// EventBus все получатели событий сессии. Порядок: лог, метрики, статистика, журнал, внешние каналы
func (sp *ServiceProvider) EventBus(ctx context.Context) *event.Bus {
	if sp.bus == nil {
		bus := event.NewBus(
			event.NewLogSink(sp.Logger()),
			event.NewMetricsSink(sp.Registry()),
			event.NewStatsSink(sp.StatsRepository()),
			event.NewJournalSink(sp.Journal(ctx), sp.Logger()),
		)
		if cfg := sp.RedisCfg(); cfg != nil {
			bus.Subscribe(event.NewRedisSink(sp.RedisClient(ctx), cfg.Channel(), sp.Logger()))
		}
		bus.Subscribe(sp.Hub())
		sp.bus = bus
	}
	return sp.bus
}

func (sp *ServiceProvider) SessionService(ctx context.Context) service.SessionService {
	if sp.sessionServ == nil {
		reels := lo.Map(sp.Reels(), func(r *reel.Reel, _ int) session.Reel { return r })
		s, err := session.NewSessionService(sp.EngineCfg().Bet(), reels, sp.Evaluator(), sp.EventBus(ctx), sp.Logger())
		if err != nil {
			panic("failed to create session: " + err.Error())
		}
		sp.sessionServ = s
	}
	return sp.sessionServ
}

func (sp *ServiceProvider) Driver(ctx context.Context) *session.Driver {
	if sp.driver == nil {
		sp.driver = session.NewDriver(sp.SessionService(ctx), sp.EngineCfg().TickRate(), sp.Logger())
	}
	return sp.driver
}

func (sp *ServiceProvider) SessionHandler(ctx context.Context) *sessionAPI.Handler {
	if sp.sessionHand == nil {
		sp.sessionHand = sessionAPI.NewHandler(sessionAPI.HandlerDeps{
			Serv:    sp.SessionService(ctx),
			Stats:   sp.StatsRepository(),
			Journal: sp.Journal(ctx),
		})
	}
	return sp.sessionHand
}

func (sp *ServiceProvider) RateLimiter() *middleware.RateLimiter {
	if sp.limiter == nil {
		cfg := sp.RateLimitCfg()
		sp.limiter = middleware.NewRateLimiter(cfg.RPS(), cfg.Burst(), sp.Logger())
	}
	return sp.limiter
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))
		r.Use(middleware.Logger(sp.Logger()))

		// Session endpoints
		sessionHandler := sp.SessionHandler(ctx)
		r.Route("/session", func(rr chi.Router) {
			rr.With(sp.RateLimiter().Handler).Post("/spin", sessionHandler.Spin)
			rr.Post("/bet", sessionHandler.ChangeBet)
			rr.Get("/state", sessionHandler.State)
			rr.Get("/grid", sessionHandler.Grid)
			rr.Get("/paylines", sessionHandler.Paylines)
			rr.Get("/last", sessionHandler.LastSpin)
			rr.Get("/history", sessionHandler.History)
			rr.Get("/stats", sessionHandler.Stats)
			rr.Get("/events", sp.Hub().ServeWS)
		})

		r.Handle("/metrics", promhttp.HandlerFor(sp.Registry(), promhttp.HandlerOpts{}))

		sp.router = r
	}
	return sp.router
}

// Close освобождает внешние подключения
func (sp *ServiceProvider) Close() {
	if sp.hub != nil {
		sp.hub.Close()
	}
	if sp.redisClient != nil {
		if err := sp.redisClient.Close(); err != nil {
			sp.Logger().Warn("failed to close redis client", zap.Error(err))
		}
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.logger != nil {
		_ = sp.logger.Sync()
	}
}
