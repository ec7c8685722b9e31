package repository

import (
	"context"
	"sync"

	"github.com/tempizhere/compresseverything/internal/apperr"
	"github.com/tempizhere/compresseverything/internal/models"
)

// MemoryRepository реализует интерфейс Repository с использованием map.
// Используется, когда DSN базы данных не задан.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]string
}

// NewMemoryRepository создаёт новый экземпляр MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		store: make(map[string]string),
	}
}

// Save сохраняет пару код-URL, повторный код отклоняется как в PostgreSQL
func (r *MemoryRepository) Save(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[id]; exists {
		return apperr.Internal("Database error", ErrIDExists)
	}
	r.store[id] = url
	return nil
}

// Get возвращает URL по коду, если он существует
func (r *MemoryRepository) Get(_ context.Context, id string) (models.URL, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	url, exists := r.store[id]
	if !exists {
		return models.URL{}, apperr.NotFound("URL not found", nil)
	}
	return models.URL{ID: id, TargetURL: url}, nil
}

// Ping всегда успешен
func (r *MemoryRepository) Ping(_ context.Context) error {
	return nil
}

// Len возвращает количество записей
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.store)
}
