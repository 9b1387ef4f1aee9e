// Package scheduler contém os serviços de agendamento para sincronização de dados
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/chaivision/chai-vision-api/infrastructure/integrator/sellerhub"
	sellerhubdomain "github.com/chaivision/chai-vision-api/infrastructure/integrator/sellerhub/domain"
	"github.com/chaivision/chai-vision-api/internal/config"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/internal/usecases/ingesting"
)

type SellerHubSyncConfig struct {
	CronSchedule string
	LookbackDays int
	SyncEnabled  bool
}

// SellerHubSyncService puxa as vendas recentes do SellerHub e entrega ao
// pipeline de ingestão, que normaliza, persiste e audita o lote.
type SellerHubSyncService struct {
	scheduler           *gocron.Scheduler
	integrator          sellerhub.SellerHubIntegrator
	ingestor            ingesting.Ingestor
	config              SellerHubSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewSellerHubSyncService(
	integrator sellerhub.SellerHubIntegrator,
	ingestor ingesting.Ingestor,
	cfg *config.Config,
) *SellerHubSyncService {
	syncConfig := SellerHubSyncConfig{
		CronSchedule: cfg.SellerHubSync.CronSchedule, // Default: 3h da manhã todos os dias
		LookbackDays: cfg.SellerHubSync.LookbackDays, // Default: 7 dias
		SyncEnabled:  cfg.SellerHubSync.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"lookback_days": syncConfig.LookbackDays,
	}).Info("Configuração do agendador de sincronização do SellerHub carregada")

	return &SellerHubSyncService{
		scheduler:  scheduler,
		integrator: integrator,
		ingestor:   ingestor,
		config:     syncConfig,
	}
}

func (s *SellerHubSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de sincronização de vendas do SellerHub desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de sincronização de vendas do SellerHub")

	// Agendar a sincronização de vendas
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.SyncSales(); err != nil {
			logrus.WithError(err).Error("Erro na sincronização de vendas do SellerHub")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de vendas do SellerHub: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de sincronização do SellerHub")
		s.scheduler.Stop()
	}()

	return nil
}

// SyncSales busca a janela configurada de dias para trás e ingere o lote.
// Linhas inválidas do feed são rejeitadas individualmente pela ingestão;
// a sincronização só falha quando o provedor ou o banco falham.
func (s *SellerHubSyncService) SyncSales() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Sincronização de vendas do SellerHub já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	return s.syncSalesWindow(time.Now())
}

func (s *SellerHubSyncService) syncSalesWindow(reference time.Time) error {
	endDate := reference
	startDate := reference.AddDate(0, 0, -s.config.LookbackDays)

	logrus.WithFields(logrus.Fields{
		"start_date": startDate.Format(time.DateOnly),
		"end_date":   endDate.Format(time.DateOnly),
	}).Info("Iniciando sincronização de vendas do SellerHub")

	rows, err := s.integrator.FetchSalesData(sellerhubdomain.GetOrdersParams{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar vendas do SellerHub")
		return err
	}

	if len(rows) == 0 {
		logrus.Info("Nenhuma venda encontrada no SellerHub para a janela")
		return nil
	}

	batchLabel := fmt.Sprintf("sellerhub %s a %s",
		startDate.Format(time.DateOnly), endDate.Format(time.DateOnly))

	result, err := s.ingestor.IngestFrom(ingesting.SourceFromRows(rows), domain.OriginFeed, batchLabel)
	if err != nil {
		logrus.WithError(err).Error("Erro ao ingerir vendas do SellerHub")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"rows_received": result.Audit.RowsReceived,
		"rows_accepted": result.Audit.RowsAccepted,
		"rows_rejected": result.Audit.RowsRejected,
	}).Info("Sincronização de vendas do SellerHub concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma sincronização de vendas
func (s *SellerHubSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de vendas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de vendas do SellerHub")
	go func() {
		if err := s.SyncSales(); err != nil {
			logrus.WithError(err).Error("Erro na sincronização manual de vendas do SellerHub")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *SellerHubSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"lookback_days":          s.config.LookbackDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
