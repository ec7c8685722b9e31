// Package grpc содержит реализацию gRPC сервера для сервиса сокращения URL
package grpc

import (
	"context"
	"time"

	"github.com/tempizhere/compresseverything/internal/apperr"
	"github.com/tempizhere/compresseverything/internal/grpc/proto"
	"github.com/tempizhere/compresseverything/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server реализует gRPC сервер для сервиса сокращения URL
type Server struct {
	proto.UnimplementedShortenerServer
	svc     *service.Service
	logger  *zap.Logger
	timeout time.Duration
}

// NewServer создаёт новый gRPC сервер.
// timeout ограничивает время обращения к хранилищу в одном вызове.
func NewServer(svc *service.Service, logger *zap.Logger, timeout time.Duration) *Server {
	return &Server{
		svc:     svc,
		logger:  logger,
		timeout: timeout,
	}
}

// NewGRPCServer собирает grpc.Server с JSON-кодеком, интерцепторами и зарегистрированным сервисом
func NewGRPCServer(srv *Server, logger *zap.Logger) *grpc.Server {
	s := grpc.NewServer(
		grpc.ForceServerCodec(proto.JSONCodec{}),
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor(logger),
			LoggingInterceptor(logger),
		),
	)
	proto.RegisterShortenerServer(s, srv)
	return s
}

// Shorten создаёт короткий URL
func (s *Server) Shorten(ctx context.Context, req *proto.ShortenRequest) (*proto.ShortenResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	shortURL, err := s.svc.CreateShortURL(ctx, req.URL)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &proto.ShortenResponse{ShortURL: shortURL}, nil
}

// Resolve возвращает исходный URL по коду
func (s *Server) Resolve(ctx context.Context, req *proto.ResolveRequest) (*proto.ResolveResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	target, err := s.svc.GetOriginalURL(ctx, req.ID)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &proto.ResolveResponse{URL: target}, nil
}

// Ping проверяет состояние хранилища
func (s *Server) Ping(ctx context.Context, _ *proto.PingRequest) (*proto.PingResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.svc.Ping(ctx); err != nil {
		s.logger.Warn("Database ping failed", zap.Error(err))
		return &proto.PingResponse{DatabaseAvailable: false}, nil
	}
	return &proto.PingResponse{DatabaseAvailable: true}, nil
}

// mapError преобразует ошибки бизнес-логики в gRPC статусы
func (s *Server) mapError(err error) error {
	msg := apperr.Message(err)
	switch apperr.KindOf(err) {
	case apperr.KindInvalidInput:
		return status.Error(codes.InvalidArgument, msg)
	case apperr.KindNotFound:
		return status.Error(codes.NotFound, msg)
	case apperr.KindInternal:
		s.logger.Error("Request failed", zap.Error(err))
		return status.Error(codes.Internal, msg)
	default:
		s.logger.Error("Unexpected error kind", zap.Error(err))
		return status.Error(codes.Internal, msg)
	}
}
