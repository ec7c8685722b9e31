package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tempizhere/compresseverything/internal/apperr"
	"github.com/tempizhere/compresseverything/internal/models"
	"go.uber.org/zap"
)

const (
	insertURLQuery = "INSERT INTO urls (id, url) VALUES ($1, $2)"
	selectURLQuery = "SELECT url FROM urls WHERE id = $1"
)

// PostgresRepository реализует интерфейс Repository с использованием PostgreSQL
type PostgresRepository struct {
	db     Database
	logger *zap.Logger
}

// NewPostgresRepository создаёт новый экземпляр PostgresRepository
func NewPostgresRepository(db Database, logger *zap.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: logger,
	}
}

// Save сохраняет пару код-URL в базе данных.
// Занятый код возвращается как внутренняя ошибка, оборачивающая ErrIDExists.
func (r *PostgresRepository) Save(ctx context.Context, id, url string) error {
	_, err := r.db.ExecContext(ctx, insertURLQuery, id, url)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		r.logger.Warn("Short ID collision", zap.String("id", id))
		return apperr.Internal("Database error", ErrIDExists)
	}

	r.logger.Error("Failed to save URL to database", zap.String("id", id), zap.String("url", url), zap.Error(err))
	return apperr.Internal("Database error", err)
}

// Get возвращает URL по короткому коду
func (r *PostgresRepository) Get(ctx context.Context, id string) (models.URL, error) {
	u := models.URL{ID: id}
	err := r.db.QueryRowContext(ctx, selectURLQuery, id).Scan(&u.TargetURL)
	if errors.Is(err, sql.ErrNoRows) {
		return models.URL{}, apperr.NotFound("URL not found", err)
	}
	if err != nil {
		r.logger.Error("Failed to get URL from database", zap.String("id", id), zap.Error(err))
		return models.URL{}, apperr.Internal("Database error", err)
	}
	return u, nil
}

// Ping проверяет соединение с базой данных
func (r *PostgresRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return apperr.Internal("Database connection failed", err)
	}
	return nil
}
