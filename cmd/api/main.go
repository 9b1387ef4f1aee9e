package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chaivision/chai-vision-api/infrastructure/cache"
	"github.com/chaivision/chai-vision-api/infrastructure/database/postgres"
	"github.com/chaivision/chai-vision-api/infrastructure/integrator/sellerhub"
	"github.com/chaivision/chai-vision-api/infrastructure/integrator/sellerhub/sellerhubclient"
	"github.com/chaivision/chai-vision-api/infrastructure/repository"
	"github.com/chaivision/chai-vision-api/internal/api"
	"github.com/chaivision/chai-vision-api/internal/config"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/internal/scheduler"
	"github.com/chaivision/chai-vision-api/internal/usecases/aggregating"
	"github.com/chaivision/chai-vision-api/internal/usecases/authenticating"
	"github.com/chaivision/chai-vision-api/internal/usecases/comparing"
	"github.com/chaivision/chai-vision-api/internal/usecases/ingesting"
	"github.com/chaivision/chai-vision-api/internal/usecases/insighting"
	"github.com/chaivision/chai-vision-api/internal/usecases/normalizing"
	"github.com/chaivision/chai-vision-api/internal/usecases/ranking"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	salesRepo := repository.NewSalesRecordRepository(pgConn)
	targetRepo := repository.NewTargetRepository(pgConn)
	registryRepo := repository.NewRegistryRepository(pgConn)
	auditRepo := repository.NewUploadAuditRepository(pgConn)
	rankingRepo := repository.NewRankingRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	summaryCache := summaryCache(cfg)

	normalizer := normalizing.NewService()
	aggregator := aggregating.NewService()
	comparator := comparing.NewService()

	ingestor := ingesting.NewService(registryRepo, salesRepo, auditRepo, normalizer, summaryCache)
	insighter := insighting.NewService(cfg, salesRepo, targetRepo, aggregator, comparator, summaryCache)
	rankingService := ranking.NewService(salesRepo, rankingRepo)

	sellerhubClient := sellerhubclient.NewClient(cfg)
	sellerhubIntegrator := sellerhub.New(cfg, sellerhubClient)

	if cfg.DemoData.Enabled {
		seedDemoData(cfg, salesRepo, registryRepo, ingestor)
	}

	// Inicializa os agendadores de sincronização e de recálculo
	sellerhubSyncService := scheduler.NewSellerHubSyncService(
		sellerhubIntegrator,
		ingestor,
		cfg,
	)

	rankingRefreshService := scheduler.NewRankingRefreshService(
		rankingService,
		cfg,
	)

	// Inicia os agendadores em background
	if err := sellerhubSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização do SellerHub")
	} else {
		logrus.Info("Agendador de sincronização do SellerHub iniciado com sucesso")
	}

	if err := rankingRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recálculo de rankings")
	} else {
		logrus.Info("Agendador de recálculo de rankings iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Conn:           pgConn,
		Authenticator:  authenticator,
		Ingestor:       ingestor,
		Insighter:      insighter,
		RankingService: rankingService,
		SalesRepo:      salesRepo,
		TargetRepo:     targetRepo,
		RegistryRepo:   registryRepo,
		AuditRepo:      auditRepo,
		SellerHubSync:  sellerhubSyncService,
		RankingRefresh: rankingRefreshService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// summaryCache escolhe a implementação de cache de resumos: Redis quando
// habilitado, caso contrário um no-op que mantém o serviço funcional.
func summaryCache(cfg *config.Config) cache.SummaryCache {
	if cfg.Redis.Enabled {
		logrus.Infof("Cache de resumos no Redis habilitado (%s)", cfg.Redis.Addr)
		return cache.NewRedisSummaryCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}

	logrus.Info("Redis desabilitado, seguindo sem cache de resumos")
	return cache.NoopSummaryCache{}
}

// seedDemoData popula a base com vendas sintéticas do ano corrente e do
// anterior quando ela está vazia, para demonstrações e ambientes locais.
func seedDemoData(
	cfg *config.Config,
	salesRepo repository.SalesRecordRepository,
	registryRepo repository.RegistryRepository,
	ingestor ingesting.Ingestor,
) {
	count, err := salesRepo.CountAll()
	if err != nil {
		logrus.WithError(err).Error("Erro ao verificar se a base de vendas está vazia, pulando dados de demonstração")
		return
	}
	if count > 0 {
		logrus.Infof("Base de vendas já tem %d registros, pulando dados de demonstração", count)
		return
	}

	registry, err := registryRepo.GetRegistry()
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar o cadastro para os dados de demonstração")
		return
	}

	currentYear := time.Now().Year()
	for offset, year := range []int{currentYear - 1, currentYear} {
		source := ingesting.NewDemoSource(cfg.DemoData.Seed+int64(offset), year, *registry)
		result, err := ingestor.IngestFrom(source, domain.OriginDemo, fmt.Sprintf("demo %d", year))
		if err != nil {
			logrus.WithError(err).Errorf("Erro ao gerar dados de demonstração de %d", year)
			return
		}

		logrus.WithFields(logrus.Fields{
			"year":          year,
			"rows_accepted": result.Audit.RowsAccepted,
		}).Info("Dados de demonstração gerados")
	}
}
