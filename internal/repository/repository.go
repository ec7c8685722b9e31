// Package repository содержит хранилища соответствий короткий код -> URL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tempizhere/compresseverything/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// ErrIDExists возвращается, когда короткий код уже занят
var ErrIDExists = errors.New("short code already exists")

// Repository определяет интерфейс для работы с хранилищем URL
type Repository interface {
	// Save сохраняет URL под заданным коротким кодом
	Save(ctx context.Context, id, url string) error
	// Get возвращает запись по короткому коду
	Get(ctx context.Context, id string) (models.URL, error)
	// Ping проверяет доступность хранилища
	Ping(ctx context.Context) error
}

// Database определяет интерфейс для работы с базой данных.
// Ему удовлетворяет *sql.DB, в тестах - соединение sqlmock.
type Database interface {
	// PingContext проверяет соединение с базой данных
	PingContext(ctx context.Context) error
	// ExecContext выполняет SQL-команду без возврата результатов
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	// QueryRowContext выполняет SQL-запрос и возвращает одну строку результата
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	// Close закрывает соединение с базой данных
	Close() error
}
