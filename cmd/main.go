package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"desdemona/internal/adapters"
	"desdemona/internal/bootstrap"
	othelloDelivery "desdemona/internal/delivery/othello"
	playDelivery "desdemona/internal/delivery/play"
	ownMiddleware "desdemona/internal/middleware"
	repo "desdemona/internal/repository"
	othellouc "desdemona/internal/usecase/othello"
	decisionRPC "desdemona/microservices/proto"
)

type mainDeliveryHandler struct {
	othello *othelloDelivery.OthelloHandler
	play    *playDelivery.PlayHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.mongoAdapter.Close(context.Background())
	defer databaseAdapters.redisAdapter.Close(context.Background())

	var grpcDecider *grpc.ClientConn
	if cfg.DeciderAddr != "" {
		grpcDecider, err = grpc.NewClient(cfg.DeciderAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			logger.Error("Failed to create grpc client", zap.Error(err))
			return
		}
		defer grpcDecider.Close()
	}

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, grpcDecider, databaseAdapters)
	handlers.Router(r, cfg)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown server", zap.Error(err))
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, cfg *bootstrap.Config) {
	if cfg.IsLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
		h.othello.Routes(r)
	})
	r.Get("/play", h.play.HandlePlay)
}

// initDatabaseAdapters connects the configured stores. A store that is not
// configured or not reachable is left out and decisions are computed.
func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if mongoAdapter.Enabled() {
		if err := mongoAdapter.Init(ctx); err != nil {
			log.Warnw("decision archive disabled", "error", err)
		}
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if redisAdapter.Enabled() {
		if err := redisAdapter.Init(ctx); err != nil {
			log.Warnw("decision cache disabled", "error", err)
		}
	}

	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	grpcDecider *grpc.ClientConn,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	store := repo.NewDecisionStore(&cfg, log, databaseAdapters.redisAdapter, databaseAdapters.mongoAdapter)
	othelloUC := othellouc.NewOthelloUseCase(store, log, cfg.MaxIntelligence)

	var decider othellouc.Decider = othelloUC
	if grpcDecider != nil {
		log.Infow("decisions are delegated to the decision service", "addr", cfg.DeciderAddr)
		decider = othellouc.NewRemoteDecider(decisionRPC.NewDecisionServiceClient(grpcDecider))
	}

	return &mainDeliveryHandler{
		othello: othelloDelivery.NewOthelloHandler(cfg, log, othelloUC, decider),
		play:    playDelivery.NewPlayHandler(cfg, log, othelloUC, decider),
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
