package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ferdian3456/userregistry/db"
	"github.com/ferdian3456/userregistry/internal/constant"
	"github.com/ferdian3456/userregistry/internal/model"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

type UserRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewUserRepository(zap *zap.Logger, db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		Log: zap,
		DB:  db,
	}
}

// Init applies the embedded schema. Already-applied versions are left alone,
// so it is safe to call on every start. Migrations run on connections borrowed
// from the pool, never on a second dial of the configured url.
func (repository *UserRepository) Init(ctx context.Context) error {
	source, err := iofs.New(db.Migrations, db.PostgresMigrationsDir)
	if err != nil {
		return fmt.Errorf("%w: load migrations: %w", model.ErrPersistence, err)
	}

	sqlDB := stdlib.OpenDBFromPool(repository.DB)

	driver, err := pgxmigrate.WithInstance(sqlDB, &pgxmigrate.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("%w: open migration driver: %w", model.ErrPersistence, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("%w: open migrator: %w", model.ErrPersistence, err)
	}
	// releases the borrowed connection, the pool itself stays open
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: apply migrations: %w", model.ErrPersistence, err)
	}

	version, _, _ := m.Version()
	repository.Log.Info("users table is ready", zap.String("driver", "postgres"), zap.Uint("schema_version", version))

	return nil
}

func (repository *UserRepository) Insert(ctx context.Context, name string, age int, imagePath string) (model.User, error) {
	query := "INSERT INTO users (name, age, image_path, created_at) VALUES ($1, $2, $3, $4) RETURNING id, name, age, image_path, created_at"

	user := model.User{}
	now := time.Now().UTC()
	err := repository.DB.QueryRow(ctx, query, name, age, imagePath, now).Scan(&user.Id, &user.Name, &user.Age, &user.ImagePath, &user.CreatedAt)
	if err != nil {
		return user, fmt.Errorf("%w: insert user: %w", model.ErrPersistence, err)
	}

	return user, nil
}

func (repository *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	query := "SELECT id, name, age, image_path, created_at FROM users ORDER BY created_at DESC, id DESC"

	rows, err := repository.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %w", model.ErrPersistence, err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user := model.User{}
		err = rows.Scan(&user.Id, &user.Name, &user.Age, &user.ImagePath, &user.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scan user: %w", model.ErrPersistence, err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list users: %w", model.ErrPersistence, err)
	}

	return users, nil
}

func (repository *UserRepository) FindById(ctx context.Context, id int64) (model.User, error) {
	query := "SELECT id, name, age, image_path, created_at FROM users WHERE id = $1 LIMIT 1"

	user := model.User{}
	err := repository.DB.QueryRow(ctx, query, id).Scan(&user.Id, &user.Name, &user.Age, &user.ImagePath, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, userNotFound()
		}
		return user, fmt.Errorf("%w: find user: %w", model.ErrPersistence, err)
	}

	return user, nil
}

func (repository *UserRepository) DeleteById(ctx context.Context, id int64) error {
	query := "DELETE FROM users WHERE id = $1"

	tag, err := repository.DB.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: delete user: %w", model.ErrPersistence, err)
	}

	if tag.RowsAffected() == 0 {
		return userNotFound()
	}

	return nil
}

func userNotFound() error {
	return &model.ValidationError{
		Code:    constant.ERR_NOT_FOUND_ERROR,
		Message: "User not found",
		Param:   "id",
	}
}
