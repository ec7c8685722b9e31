// Package app содержит HTTP-обработчики сервиса и сборку маршрутизатора.
package app

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tempizhere/compresseverything/internal/apperr"
	"github.com/tempizhere/compresseverything/internal/service"
	"go.uber.org/zap"
)

// homeBody - ответ на GET /
const homeBody = "Hello World!"

// maxBodySize ограничивает размер тела POST /
const maxBodySize = 8 << 10

// App содержит хендлеры и зависимости
type App struct {
	svc     *service.Service
	logger  *zap.Logger
	timeout time.Duration
}

// NewApp создаёт новое приложение.
// timeout ограничивает время обращения к хранилищу в рамках одного запроса.
func NewApp(svc *service.Service, logger *zap.Logger, timeout time.Duration) *App {
	return &App{svc: svc, logger: logger, timeout: timeout}
}

// HandleHome обрабатывает GET-запросы на "/"
func (a *App) HandleHome(w http.ResponseWriter, _ *http.Request) {
	a.writeText(w, http.StatusOK, homeBody)
}

// HandlePostURL обрабатывает POST-запросы на "/": тело запроса - URL в виде текста
func (a *App) HandlePostURL(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		a.logger.Warn("Failed to read request body", zap.Error(err))
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.timeout)
	defer cancel()

	shortURL, err := a.svc.CreateShortURL(ctx, string(body))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeText(w, http.StatusOK, shortURL)
}

// HandleGetURL обрабатывает GET-запросы на "/{id}"
func (a *App) HandleGetURL(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), a.timeout)
	defer cancel()

	target, err := a.svc.GetOriginalURL(ctx, id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusFound)
}

// HandlePing обрабатывает GET-запросы на "/ping"
func (a *App) HandlePing(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), a.timeout)
	defer cancel()

	if err := a.svc.Ping(ctx); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// statusFor сопоставляет вид ошибки с HTTP-статусом
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalidInput:
		return http.StatusUnprocessableEntity
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// writeError пишет ответ с кодом и сообщением, соответствующими виду ошибки
func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		a.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Error(err),
		)
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	a.writeText(w, status, apperr.Message(err))
}

// writeText пишет текстовый ответ с проверкой ошибок
func (a *App) writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		a.logger.Warn("Failed to write response", zap.Error(err))
	}
}
