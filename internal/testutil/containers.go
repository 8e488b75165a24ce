package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	MinioUser     = "minioadmin"
	MinioPassword = "minioadmin"
)

// RequireDocker skips integration tests in -short mode or when no container
// runtime is reachable.
func RequireDocker(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
}

// StartPostgres returns a connection url for a fresh database, terminated on cleanup.
func StartPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()
	RequireDocker(t)

	t.Log("Starting PostgreSQL container...")
	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("userdb_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "postgres container should start")
	t.Cleanup(func() { _ = pgContainer.Terminate(context.Background()) })

	pgURL, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "postgres connection string should resolve")
	t.Logf("PostgreSQL started at: %s", pgURL)

	return pgURL
}

// StartRedis returns a host:port address for a fresh redis, terminated on cleanup.
func StartRedis(ctx context.Context, t *testing.T) string {
	t.Helper()
	RequireDocker(t)

	t.Log("Starting Redis container...")
	redisContainer, err := redis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections"),
		),
	)
	require.NoError(t, err, "redis container should start")
	t.Cleanup(func() { _ = redisContainer.Terminate(context.Background()) })

	redisHost, err := redisContainer.Host(ctx)
	require.NoError(t, err, "redis host should resolve")

	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err, "redis port should resolve")

	redisURL := fmt.Sprintf("%s:%s", redisHost, redisPort.Port())
	t.Logf("Redis started at: %s", redisURL)

	return redisURL
}

// StartMinio returns a host:port endpoint for a fresh MinIO, terminated on cleanup.
func StartMinio(ctx context.Context, t *testing.T) string {
	t.Helper()
	RequireDocker(t)

	t.Log("Starting MinIO container...")
	minioContainer, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image: "minio/minio:latest",
				Cmd:   []string{"server", "/data"},
				Env: map[string]string{
					"MINIO_ROOT_USER":     MinioUser,
					"MINIO_ROOT_PASSWORD": MinioPassword,
				},
				ExposedPorts: []string{"9000/tcp"},
				WaitingFor:   wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
			},
			Started: true,
		},
	)
	require.NoError(t, err, "minio container should start")
	t.Cleanup(func() { _ = minioContainer.Terminate(context.Background()) })

	minioHost, err := minioContainer.Host(ctx)
	require.NoError(t, err, "minio host should resolve")

	minioPort, err := minioContainer.MappedPort(ctx, "9000")
	require.NoError(t, err, "minio port should resolve")

	minioURL := fmt.Sprintf("%s:%s", minioHost, minioPort.Port())
	t.Logf("MinIO started at: %s", minioURL)

	return minioURL
}
