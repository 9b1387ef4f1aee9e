package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/chaivision/chai-vision-api/internal/config"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/internal/usecases/ranking"
)

type RankingRefreshConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// RankingRefreshService recalcula os snapshots de ranking por marca e por
// canal para os períodos correntes (mês, trimestre e ano), para que o
// dashboard sirva posições pré-calculadas em vez de agregar a cada acesso.
type RankingRefreshService struct {
	scheduler           *gocron.Scheduler
	rankingService      ranking.RankingService
	config              RankingRefreshConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewRankingRefreshService(
	rankingService ranking.RankingService,
	cfg *config.Config,
) *RankingRefreshService {
	refreshConfig := RankingRefreshConfig{
		CronSchedule: cfg.RankingRefresh.CronSchedule, // Default: 5h da manhã todos os dias
		SyncEnabled:  cfg.RankingRefresh.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
	}).Info("Configuração do agendador de recálculo de ranking carregada")

	return &RankingRefreshService{
		scheduler:      scheduler,
		rankingService: rankingService,
		config:         refreshConfig,
	}
}

func (s *RankingRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de recálculo de ranking desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de recálculo de ranking")

	// Agendar o recálculo do ranking
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RefreshRankings(); err != nil {
			logrus.WithError(err).Error("Erro no recálculo do ranking")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recálculo de ranking: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de recálculo de ranking")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshRankings recalcula o ranking das duas dimensões para o mês, o
// trimestre e o ano correntes. Falhas em um período não impedem os demais;
// o erro devolvido agrega o que falhou.
func (s *RankingRefreshService) RefreshRankings() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Recálculo de ranking já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	return s.refreshRankingsAt(time.Now())
}

func (s *RankingRefreshService) refreshRankingsAt(reference time.Time) error {
	periods, err := currentPeriods(reference)
	if err != nil {
		return err
	}

	logrus.Info("Iniciando recálculo dos rankings por marca e por canal")

	var failures []string
	for _, period := range periods {
		for _, by := range []string{domain.RankingByBrand, domain.RankingByChannel} {
			if _, err := s.rankingService.RefreshRanking(by, period); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"by":     by,
					"period": period.Label(),
				}).Error("Erro ao recalcular ranking")
				failures = append(failures, fmt.Sprintf("%s/%s", by, period.Label()))
			}
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("recálculo de ranking falhou para: %v", failures)
	}

	logrus.Info("Recálculo dos rankings concluído")

	return nil
}

// currentPeriods resolve o mês, o trimestre e o ano que contêm a data de
// referência.
func currentPeriods(reference time.Time) ([]domain.Period, error) {
	year := reference.Year()
	month := int(reference.Month())
	quarter := (month-1)/3 + 1

	monthly, err := domain.ResolvePeriod(domain.PeriodMonthly, year, 0, month)
	if err != nil {
		return nil, err
	}

	quarterly, err := domain.ResolvePeriod(domain.PeriodQuarterly, year, quarter, 0)
	if err != nil {
		return nil, err
	}

	annual, err := domain.ResolvePeriod(domain.PeriodAnnual, year, 0, 0)
	if err != nil {
		return nil, err
	}

	return []domain.Period{monthly, quarterly, annual}, nil
}

// TriggerManualSync inicia manualmente um recálculo do ranking
func (s *RankingRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo de ranking já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recálculo manual do ranking")
	go func() {
		if err := s.RefreshRankings(); err != nil {
			logrus.WithError(err).Error("Erro no recálculo manual do ranking")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *RankingRefreshService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
