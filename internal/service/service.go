// Package service реализует логику сокращения URL: проверку и нормализацию
// адреса, генерацию короткого кода и поиск исходного URL.
package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/tempizhere/compresseverything/internal/apperr"
	"github.com/tempizhere/compresseverything/internal/metrics"
	"github.com/tempizhere/compresseverything/internal/models"
	"github.com/tempizhere/compresseverything/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Alphabet - URL-безопасный алфавит коротких кодов
const Alphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// maxIDAttempts ограничивает число попыток при коллизии кода
const maxIDAttempts = 5

// ErrUniqueIDFailed возвращается, когда все попытки упёрлись в занятые коды
var ErrUniqueIDFailed = errors.New("failed to generate unique ID")

// IDGenerator генерирует короткий код
type IDGenerator func() (string, error)

// Option настраивает Service
type Option func(*Service)

// WithIDGenerator подменяет генератор кодов
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// WithMetrics подключает счётчики сервиса
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// Service реализует логику работы с короткими URL
type Service struct {
	repo    repository.Repository
	baseURL string
	logger  *zap.Logger
	newID   IDGenerator
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// NewService создаёт новый экземпляр Service
func NewService(repo repository.Repository, baseURL string, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		baseURL: baseURL,
		logger:  logger,
		newID:   GenerateShortID,
		tracer:  otel.Tracer("github.com/tempizhere/compresseverything/internal/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateShortID генерирует код из models.ShortIDLength символов алфавита Alphabet
// на криптографически стойком источнике
func GenerateShortID() (string, error) {
	return gonanoid.Generate(Alphabet, models.ShortIDLength)
}

// CreateShortURL проверяет URL, сохраняет его нормализованную форму под новым кодом
// и возвращает полный короткий URL
func (s *Service) CreateShortURL(ctx context.Context, rawURL string) (shortURL string, err error) {
	ctx, span := s.tracer.Start(ctx, "Service.CreateShortURL")
	defer func() { endSpan(span, err) }()

	target, err := Canonicalize(rawURL)
	if err != nil {
		return "", apperr.InvalidInput("Invalid URL", err)
	}
	span.SetAttributes(attribute.String("url.target", target))

	var id string
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		id, err = s.newID()
		if err != nil {
			s.logger.Error("Failed to generate short ID", zap.Error(err))
			return "", apperr.Internal("Internal server error", err)
		}

		err = s.repo.Save(ctx, id, target)
		if err == nil {
			span.SetAttributes(attribute.String("url.id", id), attribute.Int("attempts", attempt))
			s.metrics.LinkCreated()
			return s.ShortURL(id), nil
		}
		if !errors.Is(err, repository.ErrIDExists) {
			return "", err
		}

		s.metrics.IDCollision()
		s.logger.Warn("Short ID already taken, regenerating", zap.String("id", id), zap.Int("attempt", attempt))
	}

	s.logger.Error("Failed to generate unique short ID", zap.Int("attempts", maxIDAttempts))
	return "", apperr.Internal("Database error", ErrUniqueIDFailed)
}

// GetOriginalURL возвращает сохранённый URL по коду
func (s *Service) GetOriginalURL(ctx context.Context, id string) (target string, err error) {
	ctx, span := s.tracer.Start(ctx, "Service.GetOriginalURL", trace.WithAttributes(attribute.String("url.id", id)))
	defer func() { endSpan(span, err) }()

	// Такой код не мог быть выдан, и PostgreSQL не примет его как текст
	if !utf8.ValidString(id) || strings.ContainsRune(id, 0) {
		s.metrics.Redirect(false)
		return "", apperr.NotFound("URL not found", nil)
	}

	u, err := s.repo.Get(ctx, id)
	if err != nil {
		s.metrics.Redirect(false)
		return "", err
	}
	s.metrics.Redirect(true)
	return u.TargetURL, nil
}

// Ping проверяет доступность хранилища
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// ShortURL собирает полный короткий URL из базового адреса и кода
func (s *Service) ShortURL(id string) string {
	return strings.TrimRight(s.baseURL, "/") + "/" + id
}

// GetBaseURL возвращает базовый адрес коротких ссылок
func (s *Service) GetBaseURL() string {
	return s.baseURL
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperr.KindOf(err).String())
	}
	span.End()
}
