package config

import (
	"github.com/ferdian3456/userregistry/internal/repository"
	"github.com/ferdian3456/userregistry/internal/usecase"

	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// NewUserStore picks the record store named by DB_DRIVER (postgres or sqlite).
// The returned func releases the underlying connections.
func NewUserStore(config *koanf.Koanf, log *zap.Logger) (usecase.UserStore, func()) {
	switch driver := String(config, "DB_DRIVER", "postgres"); driver {
	case "postgres":
		pool := NewPostgresqlPool(config, log)
		return repository.NewUserRepository(log, pool), pool.Close
	case "sqlite":
		db := NewSQLite(config, log)
		return repository.NewSQLiteUserRepository(log, db), func() { _ = db.Close() }
	default:
		log.Fatal("unknown database driver", zap.String("driver", driver))
		return nil, nil
	}
}
