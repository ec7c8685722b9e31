package app

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/tempizhere/compresseverything/internal/repository"
)

// schema создаёт таблицу ссылок, повторный запуск ничего не меняет
const schema = `CREATE TABLE IF NOT EXISTS urls (
    id VARCHAR(6) PRIMARY KEY,
    url VARCHAR NOT NULL
)`

// NewDB открывает пул подключений к PostgreSQL через драйвер pgx и проверяет соединение
func NewDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema создаёт схему базы данных
func InitSchema(ctx context.Context, db repository.Database) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
