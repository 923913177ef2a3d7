package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-afisha/internal/config"
	"github.com/iliyamo/cinema-afisha/internal/database"
	"github.com/iliyamo/cinema-afisha/internal/handler"
	"github.com/iliyamo/cinema-afisha/internal/logger"
	"github.com/iliyamo/cinema-afisha/internal/middleware"
	"github.com/iliyamo/cinema-afisha/internal/model"
	"github.com/iliyamo/cinema-afisha/internal/queue"
	"github.com/iliyamo/cinema-afisha/internal/repository"
	"github.com/iliyamo/cinema-afisha/internal/router"
	"github.com/iliyamo/cinema-afisha/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}
	log, err := logger.New(cfg.LogFormat(), cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	films, rdb, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("open catalog store", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer closeStore()
	if err := seedIfEmpty(ctx, cfg, films, log); err != nil {
		log.Fatal("seed catalog", zap.String("file", cfg.SeedFile), zap.Error(err))
	}

	publisher := openPublisher(cfg.Events, log)
	defer func() { _ = publisher.Close() }()

	limiter := middleware.NewTokenBucket(cfg.RateLimit, rateLimitClient(cfg, rdb, log), log)

	e := router.New(log)
	router.RegisterRoutes(e, cfg.StaticDir)
	router.RegisterAfisha(e, cfg.APIPrefix,
		&handler.FilmsHandler{Catalog: service.NewCatalogService(films), Log: log},
		&handler.OrderHandler{Orders: service.NewOrderService(films, publisher, log), Log: log},
		limiter,
	)

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening",
			zap.String("addr", addr),
			zap.String("env", cfg.Env),
			zap.String("driver", cfg.Database.Driver),
			zap.String("events", cfg.Events.Driver),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

// openStore builds the catalog store for cfg.Database.Driver.  The Redis
// client is returned so the rate limiter can share it.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (repository.FilmRepository, *redis.Client, func(), error) {
	db := cfg.Database
	switch db.Driver {
	case config.DriverRedis:
		rdb, err := config.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		return repository.NewRedisFilmRepo(rdb, cfg.Redis.Prefix), rdb, func() { _ = rdb.Close() }, nil

	case config.DriverMySQL, config.DriverPostgres:
		var (
			repo *repository.SQLFilmRepo
			err  error
		)
		dsn := db.URL
		if db.Driver == config.DriverMySQL {
			if dsn == "" {
				dsn = database.MySQLDSN(db.User, db.Pass, db.Host, db.Port, db.Name)
			}
			sqlDB, openErr := database.OpenMySQL(dsn)
			if openErr != nil {
				return nil, nil, nil, openErr
			}
			repo = repository.NewMySQLFilmRepo(sqlDB)
		} else {
			if dsn == "" {
				dsn = database.PostgresDSN(db.User, db.Pass, db.Host, db.Port, db.Name)
			}
			sqlDB, openErr := database.OpenPostgres(dsn)
			if openErr != nil {
				return nil, nil, nil, openErr
			}
			repo = repository.NewPostgresFilmRepo(sqlDB)
		}
		closeDB := func() { _ = repo.DB().Close() }
		if err = repo.Migrate(ctx); err != nil {
			closeDB()
			return nil, nil, nil, err
		}
		return repo, nil, closeDB, nil

	case config.DriverMemory:
		var seed []model.Film
		if cfg.SeedFile != "" {
			films, err := repository.LoadSeed(cfg.SeedFile)
			if err != nil {
				return nil, nil, nil, err
			}
			seed = films
		}
		log.Info("memory catalog", zap.Int("films", len(seed)))
		return repository.NewMemoryFilmRepo(seed), nil, func() {}, nil
	}
	return nil, nil, nil, repository.ErrUnknownDriver
}

type importer interface {
	Import(ctx context.Context, films []model.Film) error
}

// seedIfEmpty loads SEED_FILE into a persistent store that holds no films
// yet.  The memory store is seeded when it is built.
func seedIfEmpty(ctx context.Context, cfg config.Config, films repository.FilmRepository, log *zap.Logger) error {
	if cfg.SeedFile == "" || cfg.Database.Driver == config.DriverMemory {
		return nil
	}
	imp, ok := films.(importer)
	if !ok {
		return nil
	}
	n, err := films.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("catalog already populated, seed skipped", zap.Int("films", n))
		return nil
	}
	seed, err := repository.LoadSeed(cfg.SeedFile)
	if err != nil {
		return err
	}
	if err := imp.Import(ctx, seed); err != nil {
		return err
	}
	log.Info("catalog seeded", zap.Int("films", len(seed)))
	return nil
}

func openPublisher(cfg config.EventsConfig, log *zap.Logger) queue.Publisher {
	switch cfg.Driver {
	case config.EventsRabbitMQ:
		return queue.NewRabbitPublisher(cfg.RabbitURL, cfg.Queue)
	case config.EventsKafka:
		return queue.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	log.Debug("order events disabled")
	return queue.NopPublisher{}
}

// rateLimitClient reuses the catalog's Redis client when there is one.  A
// limiter that cannot reach Redis is disabled rather than failing startup.
func rateLimitClient(cfg config.Config, rdb *redis.Client, log *zap.Logger) *redis.Client {
	if !cfg.RateLimit.Enabled || rdb != nil {
		return rdb
	}
	client, err := config.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("rate limiting disabled", zap.Error(err))
		return nil
	}
	return client
}
