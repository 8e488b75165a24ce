package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferdian3456/userregistry/internal/config"
	"github.com/ferdian3456/userregistry/internal/repository"
	"github.com/ferdian3456/userregistry/internal/usecase"

	zapLog "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	time.Local = time.UTC

	logLevel := zapLog.NewAtomicLevelAt(zapcore.InfoLevel)
	zap := config.NewZap(logLevel)
	koanf := config.NewKoanf(zap)
	logLevel.SetLevel(config.ParseLogLevel(koanf.String("LOG_LEVEL")))

	shutdownTracer, err := config.NewTracer(koanf, zap)
	if err != nil {
		zap.Fatal("failed to initialize tracing", zapLog.Error(err))
	}

	userStore, closeUserStore := config.NewUserStore(koanf, zap)
	assetStore := config.NewAssetStore(koanf, zap)

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	err = userStore.Init(initCtx)
	cancelInit()
	if err != nil {
		zap.Fatal("failed to initialize users table", zapLog.Error(err))
	}

	var cache usecase.UserListCache
	rds := config.NewRedisClient(koanf, zap)
	if rds != nil {
		cache = repository.NewUserListCacheRepository(zap, rds, config.Duration(koanf, "USER_LIST_CACHE_TTL", 30*time.Second))
	}

	policy := config.LoadAssetPolicy(koanf)
	fiber := config.NewFiber(policy.MaxSize, zap)
	config.SetupMiddleware(fiber, zap, koanf.String("CORS_ALLOW_ORIGINS"), int(config.Int64(koanf, "RATE_LIMIT_PER_MINUTE", 100)))

	config.Server(&config.ServerConfig{
		Router:          fiber,
		UserRepository:  userStore,
		AssetRepository: assetStore,
		Cache:           cache,
		Log:             zap,
		UploadURLPrefix: config.UploadURLPrefix(koanf),
	})

	GO_SERVER_PORT := config.String(koanf, "GO_SERVER", ":5000")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		zap.Info("Server is running on: " + GO_SERVER_PORT)
		return fiber.Listen(GO_SERVER_PORT)
	})

	group.Go(func() error {
		<-groupCtx.Done()
		zap.Info("got one of stop signals")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return fiber.ShutdownWithContext(shutdownCtx)
	})

	err = group.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		zap.Warn("server stopped with error", zapLog.Error(err))
	}

	teardownCtx, cancelTeardown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelTeardown()

	teardown, _ := errgroup.WithContext(teardownCtx)
	teardown.Go(func() error {
		return shutdownTracer(teardownCtx)
	})
	if rds != nil {
		teardown.Go(rds.Close)
	}
	err = teardown.Wait()
	if err != nil {
		zap.Warn("failed to release resources", zapLog.Error(err))
	}
	closeUserStore()

	zap.Info("server has shut down gracefully")
	_ = zap.Sync()
}
