package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempizhere/compresseverything/internal/apperr"
	"go.uber.org/zap"
)

func newMockedRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	// Создаём SQL mock
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")
	t.Cleanup(func() { db.Close() })

	return NewPostgresRepository(db, zap.NewNop()), mock
}

func TestPostgresRepository_Save(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(mock sqlmock.Sqlmock)
		expectedKind apperr.Kind
		expectedIs   error
		expectErr    bool
	}{
		{
			name: "Save success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO urls \\(id, url\\) VALUES \\(\\$1, \\$2\\)").
					WithArgs("abc123", "https://example.com/page").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "Save duplicate ID",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO urls \\(id, url\\) VALUES \\(\\$1, \\$2\\)").
					WithArgs("abc123", "https://example.com/page").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			expectErr:    true,
			expectedKind: apperr.KindInternal,
			expectedIs:   ErrIDExists,
		},
		{
			name: "Save not null violation",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO urls \\(id, url\\) VALUES \\(\\$1, \\$2\\)").
					WithArgs("abc123", "https://example.com/page").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.NotNullViolation})
			},
			expectErr:    true,
			expectedKind: apperr.KindInternal,
		},
		{
			name: "Save connection error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO urls \\(id, url\\) VALUES \\(\\$1, \\$2\\)").
					WithArgs("abc123", "https://example.com/page").
					WillReturnError(errors.New("db error"))
			},
			expectErr:    true,
			expectedKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockedRepository(t)
			tt.setup(mock)

			err := repo.Save(context.Background(), "abc123", "https://example.com/page")
			if tt.expectErr {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				if tt.expectedIs != nil {
					assert.ErrorIs(t, err, tt.expectedIs)
				} else {
					assert.NotErrorIs(t, err, ErrIDExists)
				}
			} else {
				assert.NoError(t, err)
			}

			// Проверяем, что все ожидаемые вызовы мока выполнены
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_Get(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(mock sqlmock.Sqlmock)
		expectedURL  string
		expectErr    bool
		expectedKind apperr.Kind
	}{
		{
			name: "Get success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT url FROM urls WHERE id = \\$1").
					WithArgs("abc123").
					WillReturnRows(sqlmock.NewRows([]string{"url"}).AddRow("https://example.com/page"))
			},
			expectedURL: "https://example.com/page",
		},
		{
			name: "Get not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT url FROM urls WHERE id = \\$1").
					WithArgs("abc123").
					WillReturnError(sql.ErrNoRows)
			},
			expectErr:    true,
			expectedKind: apperr.KindNotFound,
		},
		{
			name: "Get database error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT url FROM urls WHERE id = \\$1").
					WithArgs("abc123").
					WillReturnError(errors.New("connection reset"))
			},
			expectErr:    true,
			expectedKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockedRepository(t)
			tt.setup(mock)

			u, err := repo.Get(context.Background(), "abc123")
			if tt.expectErr {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				assert.Empty(t, u.TargetURL)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "abc123", u.ID)
				assert.Equal(t, tt.expectedURL, u.TargetURL)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db, zap.NewNop())

	mock.ExpectPing()
	assert.NoError(t, repo.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = repo.Ping(context.Background())
	assert.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}
