package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/kirinyoku/cinego/internal/broker/kafka"
	"github.com/kirinyoku/cinego/internal/broker/rabbitmq"
	"github.com/kirinyoku/cinego/internal/config"
	"github.com/kirinyoku/cinego/internal/events"
	"github.com/kirinyoku/cinego/internal/postgres"
	"github.com/kirinyoku/cinego/internal/redis"
	"github.com/kirinyoku/cinego/internal/repository"
	"github.com/kirinyoku/cinego/internal/repository/memory"
	postgresrepo "github.com/kirinyoku/cinego/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/cinego/internal/repository/redis"
	"github.com/kirinyoku/cinego/internal/service"
	"github.com/kirinyoku/cinego/internal/service/auth"
	httpgin "github.com/kirinyoku/cinego/internal/transport/http/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      repository.Store
	rdb        *goredis.Client
	publisher  events.Publisher
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, logger: logger, store: store}

	var (
		deps       service.Deps
		routerDeps httpgin.Deps
	)

	if cfg.Redis.Enabled {
		a.rdb, err = redis.New(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}

		pubsub := redisrepo.NewSessionsPubSub(a.rdb)
		deps.Cache = redisrepo.New(a.rdb)
		deps.Notifier = pubsub
		routerDeps.Feed = pubsub
		routerDeps.Idem = redisrepo.NewIdempotencyStore(a.rdb, cfg.Booking.IdempotencyTTL)
		if cfg.Booking.RateLimit > 0 {
			routerDeps.Limiter = redisrepo.NewSlidingWindowLimiter(a.rdb, "booking", cfg.Booking.RateLimit, time.Minute)
		}
	} else {
		logger.Warn("redis disabled: no seat cache, rate limit, idempotency or live seat stream")
	}

	a.publisher, err = openPublisher(cfg.Broker, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize broker: %w", err)
	}
	deps.Publisher = a.publisher

	services := service.NewServices(store, deps, logger, service.Config{
		Auth: auth.Config{
			Secret:         cfg.Auth.JWTSecret,
			TokenTTL:       cfg.Auth.TokenTTL,
			BcryptCost:     cfg.Auth.BcryptCost,
			InitialBalance: cfg.Auth.InitialBalance,
		},
	})

	routerDeps.Services = services
	routerDeps.Logger = logger
	router := httpgin.NewRouter(routerDeps)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return memory.NewStore(), nil
	default:
		pool, err := postgres.New(ctx, postgres.Config{
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			DB:       cfg.Postgres.Name,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.MaxConns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		return postgresrepo.NewStore(pool), nil
	}
}

func openPublisher(cfg config.BrokerConfig, logger *slog.Logger) (events.Publisher, error) {
	switch cfg.Kind {
	case config.BrokerRabbitMQ:
		p, err := rabbitmq.NewPublisher(RabbitConfig(cfg), logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.BrokerKafka:
		p, err := kafka.NewProducer(KafkaConfig(cfg), logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return events.Noop{}, nil
	}
}

func RabbitConfig(cfg config.BrokerConfig) rabbitmq.Config {
	return rabbitmq.Config{
		URL:            cfg.RabbitURL,
		ConfirmedQueue: cfg.ConfirmedName,
		CancelledQueue: cfg.CancelledName,
	}
}

func KafkaConfig(cfg config.BrokerConfig) kafka.Config {
	return kafka.Config{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		GroupID: cfg.ConsumerGroup,
	}
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer a.Close()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server listening",
			"host", a.cfg.Server.Host,
			"port", strconv.Itoa(a.cfg.Server.Port),
			"storage", a.cfg.Storage.Driver,
			"broker", a.cfg.Broker.Kind)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}

// Close releases the broker, redis and storage connections.
func (a *App) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("broker close failed", "error", err)
		}
		a.publisher = nil
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Warn("redis close failed", "error", err)
		}
		a.rdb = nil
	}
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
}
