package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ferdian3456/userregistry/db"
	"github.com/ferdian3456/userregistry/internal/model"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// SQLiteUserRepository is the record store used for local runs and tests.
type SQLiteUserRepository struct {
	Log *zap.Logger
	DB  *sql.DB
}

func NewSQLiteUserRepository(zap *zap.Logger, db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{
		Log: zap,
		DB:  db,
	}
}

func (repository *SQLiteUserRepository) Init(ctx context.Context) error {
	source, err := iofs.New(db.Migrations, db.SQLiteMigrationsDir)
	if err != nil {
		return fmt.Errorf("%w: load migrations: %w", model.ErrPersistence, err)
	}

	// The migrator is not closed: closing the driver would close the shared *sql.DB.
	driver, err := sqlite.WithInstance(repository.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("%w: open migration driver: %w", model.ErrPersistence, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("%w: open migrator: %w", model.ErrPersistence, err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: apply migrations: %w", model.ErrPersistence, err)
	}

	version, _, _ := m.Version()
	repository.Log.Info("users table is ready", zap.String("driver", "sqlite"), zap.Uint("schema_version", version))

	return nil
}

func (repository *SQLiteUserRepository) Insert(ctx context.Context, name string, age int, imagePath string) (model.User, error) {
	query := "INSERT INTO users (name, age, image_path, created_at) VALUES (?, ?, ?, ?)"

	now := time.Now().UTC()
	result, err := repository.DB.ExecContext(ctx, query, name, age, imagePath, now)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: insert user: %w", model.ErrPersistence, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("%w: insert user: %w", model.ErrPersistence, err)
	}

	return model.User{
		Id:        id,
		Name:      name,
		Age:       age,
		ImagePath: imagePath,
		CreatedAt: now,
	}, nil
}

func (repository *SQLiteUserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	query := "SELECT id, name, age, image_path, created_at FROM users ORDER BY created_at DESC, id DESC"

	rows, err := repository.DB.QueryContext(ctx, query)
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

func (repository *SQLiteUserRepository) FindById(ctx context.Context, id int64) (model.User, error) {
	query := "SELECT id, name, age, image_path, created_at FROM users WHERE id = ? LIMIT 1"

	user := model.User{}
	err := repository.DB.QueryRowContext(ctx, query, id).Scan(&user.Id, &user.Name, &user.Age, &user.ImagePath, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user, userNotFound()
		}
		return user, fmt.Errorf("%w: find user: %w", model.ErrPersistence, err)
	}

	return user, nil
}

func (repository *SQLiteUserRepository) DeleteById(ctx context.Context, id int64) error {
	query := "DELETE FROM users WHERE id = ?"

	result, err := repository.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: delete user: %w", model.ErrPersistence, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete user: %w", model.ErrPersistence, err)
	}

	if affected == 0 {
		return userNotFound()
	}

	return nil
}
