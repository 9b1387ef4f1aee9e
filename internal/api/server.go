package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/chaivision/chai-vision-api/infrastructure/database/postgres"
	"github.com/chaivision/chai-vision-api/infrastructure/repository"
	"github.com/chaivision/chai-vision-api/internal/api/handler"
	"github.com/chaivision/chai-vision-api/internal/api/handler/router"
	"github.com/chaivision/chai-vision-api/internal/config"
	"github.com/chaivision/chai-vision-api/internal/scheduler"
	"github.com/chaivision/chai-vision-api/internal/usecases/authenticating"
	"github.com/chaivision/chai-vision-api/internal/usecases/ingesting"
	"github.com/chaivision/chai-vision-api/internal/usecases/insighting"
	"github.com/chaivision/chai-vision-api/internal/usecases/ranking"
	"github.com/chaivision/chai-vision-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Dependencies agrupa tudo que as rotas consomem. Os repositórios entram
// direto porque alguns endpoints de administração não têm usecase próprio.
type Dependencies struct {
	Conn           *postgres.Connection
	Authenticator  authenticating.Authenticator
	Ingestor       ingesting.Ingestor
	Insighter      insighting.Insighter
	RankingService ranking.RankingService

	SalesRepo    repository.SalesRecordRepository
	TargetRepo   repository.TargetRepository
	RegistryRepo repository.RegistryRepository
	AuditRepo    repository.UploadAuditRepository

	SellerHubSync  *scheduler.SellerHubSyncService
	RankingRefresh *scheduler.RankingRefreshService
}

func New(config *config.Config, deps Dependencies) (*Server, error) {
	cronServices := handler.CronJobServices{
		SellerHubSyncService:  deps.SellerHubSync,
		RankingRefreshService: deps.RankingRefresh,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(deps.Conn)...),
		router.WithRoutes(handler.Authentication(deps.Authenticator)...),
		router.WithRoutes(handler.User(deps.Authenticator)...),
		router.WithRoutes(handler.Sales(deps.Ingestor, deps.SalesRepo, deps.AuditRepo)...),
		router.WithRoutes(handler.Insights(deps.Insighter, deps.RankingService)...),
		router.WithRoutes(handler.Targets(deps.TargetRepo)...),
		router.WithRoutes(handler.Registry(deps.RegistryRepo)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(deps.Authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
