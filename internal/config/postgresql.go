package config

import (
	"context"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

func NewPostgresqlPool(config *koanf.Koanf, log *zap.Logger) *pgxpool.Pool {
	pgxConfig, err := pgxpool.ParseConfig(config.String("POSTGRES_URL"))
	if err != nil {
		log.Fatal("failed to parse postgresql config", zap.Error(err))
	}

	poolSettings(pgxConfig, config)
	pgxConfig.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxConfig)
	if err != nil {
		log.Fatal("failed to create pgx pool", zap.Error(err))
	}

	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("failed to ping postgresql database", zap.Error(err))
	}

	log.Info("postgresql pool is ready",
		zap.Int32("max_conns", pgxConfig.MaxConns),
		zap.Int32("min_conns", pgxConfig.MinConns),
	)

	return pool
}

// poolSettings sizes the pool from the POSTGRES_* keys. Min is capped at max.
func poolSettings(pgxConfig *pgxpool.Config, config *koanf.Koanf) {
	pgxConfig.MaxConns = int32(Int64(config, "POSTGRES_MAX_CONNS", 10))
	pgxConfig.MinConns = int32(Int64(config, "POSTGRES_MIN_CONNS", 1))
	if pgxConfig.MinConns > pgxConfig.MaxConns {
		pgxConfig.MinConns = pgxConfig.MaxConns
	}
	pgxConfig.MaxConnLifetime = Duration(config, "POSTGRES_MAX_CONN_LIFETIME", 30*time.Minute)
	pgxConfig.MaxConnIdleTime = Duration(config, "POSTGRES_MAX_CONN_IDLE_TIME", 5*time.Minute)
	pgxConfig.HealthCheckPeriod = time.Minute
	pgxConfig.ConnConfig.ConnectTimeout = Duration(config, "POSTGRES_CONNECT_TIMEOUT", 5*time.Second)
}
