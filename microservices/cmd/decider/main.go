package main

import (
	"context"
	"net"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"desdemona/internal/adapters"
	"desdemona/internal/bootstrap"
	repo "desdemona/internal/repository"
	othellouc "desdemona/internal/usecase/othello"
	decisionRPC "desdemona/microservices/proto"
	"desdemona/microservices/usecase"
)

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	redisAdapter := adapters.NewAdapterRedis(cfg, logger)
	if redisAdapter.Enabled() {
		if err := redisAdapter.Init(ctx); err != nil {
			logger.Warnw("decision cache disabled", "error", err)
		}
		defer redisAdapter.Close(context.Background())
	}

	mongoAdapter := adapters.NewAdapterMongo(cfg, logger)
	if mongoAdapter.Enabled() {
		if err := mongoAdapter.Init(ctx); err != nil {
			logger.Warnw("decision archive disabled", "error", err)
		}
		defer mongoAdapter.Close(context.Background())
	}

	store := repo.NewDecisionStore(cfg, logger, redisAdapter, mongoAdapter)
	local := othellouc.NewOthelloUseCase(store, logger, cfg.MaxIntelligence)

	lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
	if err != nil {
		logger.Errorw("cant listen port", "port", cfg.GrpcPort, "error", err)
		return
	}

	server := grpc.NewServer()
	decisionRPC.RegisterDecisionServiceServer(server, usecase.NewDeciderUseCase(local, logger))

	go func() {
		<-ctx.Done()
		logger.Info("Received shutdown signal")
		server.GracefulStop()
	}()

	logger.Infof("starting decision service at :%s", cfg.GrpcPort)
	if err := server.Serve(lis); err != nil {
		logger.Errorw("decision service stopped", "error", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.Sugar()
}
