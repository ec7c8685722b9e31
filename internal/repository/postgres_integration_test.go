//go:build integration

package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/tempizhere/compresseverything/internal/app"
	"github.com/tempizhere/compresseverything/internal/apperr"
	"github.com/tempizhere/compresseverything/internal/repository"
	"go.uber.org/zap"
)

const pgPort = "5432/tcp"

// startPostgres поднимает PostgreSQL в контейнере и возвращает открытое подключение
func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	dbURL := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://postgres:password@%s:%s/shortener?sslmode=disable", host, port.Port())
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{pgPort},
			Env: map[string]string{
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "shortener",
			},
			WaitingFor: wait.ForSQL(nat.Port(pgPort), "pgx", dbURL).WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, nat.Port(pgPort))
	require.NoError(t, err)

	db, err := app.NewDB(ctx, dbURL(host, port))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, app.InitSchema(ctx, db))
	// Повторное создание схемы ничего не ломает
	require.NoError(t, app.InitSchema(ctx, db))

	return db
}

func TestPostgresRepository_Integration(t *testing.T) {
	db := startPostgres(t)
	repo := repository.NewPostgresRepository(db, zap.NewNop())
	ctx := context.Background()

	target := "https://example.com/" + uuid.NewString()

	require.NoError(t, repo.Ping(ctx))
	require.NoError(t, repo.Save(ctx, "abc123", target))

	got, err := repo.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.ID)
	assert.Equal(t, target, got.TargetURL)

	err = repo.Save(ctx, "abc123", "https://example.com/other")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrIDExists)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	_, err = repo.Get(ctx, "zzzzzz")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// Один и тот же URL под разными кодами допустим
	require.NoError(t, repo.Save(ctx, "def456", target))
}
