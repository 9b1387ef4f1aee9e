// Package ranking mantém o ranking de desempenho por marca e por canal.
package ranking

import (
	"fmt"
	"sort"
	"time"

	"github.com/chaivision/chai-vision-api/infrastructure/repository"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type RankingService interface {
	// GetRanking devolve o ranking armazenado para a dimensão e o período.
	// Quando não há snapshot salvo, calcula na hora a partir das vendas.
	GetRanking(by string, period domain.Period) (*domain.RankingResponse, error)

	// RefreshRanking recalcula o ranking do período e persiste o snapshot,
	// registrando a variação de posição em relação ao snapshot anterior.
	RefreshRanking(by string, period domain.Period) ([]*domain.RankingItem, error)
}

type Service struct {
	salesRepository   repository.SalesRecordRepository
	rankingRepository repository.RankingRepository
}

func NewService(
	salesRepo repository.SalesRecordRepository,
	rankingRepo repository.RankingRepository,
) RankingService {
	return &Service{
		salesRepository:   salesRepo,
		rankingRepository: rankingRepo,
	}
}

func (s *Service) GetRanking(by string, period domain.Period) (*domain.RankingResponse, error) {
	stored, lastUpdate, err := s.rankingRepository.GetRanking(by, period.Label())
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar ranking armazenado: %w", err)
	}

	if len(stored) == 0 {
		refreshed, err := s.RefreshRanking(by, period)
		if err != nil {
			return nil, err
		}

		stored = make([]domain.RankingItem, 0, len(refreshed))
		for _, item := range refreshed {
			stored = append(stored, *item)
		}
		lastUpdate = time.Now()
	}

	return &domain.RankingResponse{
		Ranking:    stored,
		Period:     period,
		By:         by,
		LastUpdate: lastUpdate,
	}, nil
}

func (s *Service) RefreshRanking(by string, period domain.Period) ([]*domain.RankingItem, error) {
	items, err := s.salesRepository.SumByDimension(by, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("erro ao somar vendas por %s: %w", by, err)
	}

	label := period.Label()
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Revenue)
	}

	for _, item := range items {
		item.PeriodLabel = label
		if total.IsPositive() {
			share, _ := item.Revenue.Div(total).Mul(decimal.NewFromInt(100)).Float64()
			item.SharePercent = utils.RoundWithTwoDecimalPlace(share)
		}
	}

	s.updatePositions(items, by, label)

	if err := s.rankingRepository.SaveOrUpdateRanking(items); err != nil {
		return nil, fmt.Errorf("erro ao salvar ranking de %s: %w", by, err)
	}

	logrus.WithFields(logrus.Fields{
		"by":     by,
		"period": label,
		"items":  len(items),
	}).Info("Ranking atualizado")

	return items, nil
}

// updatePositions ordena por receita e registra a variação em relação ao
// snapshot anterior do mesmo período. Quem não tinha posição fica com
// variação zero.
func (s *Service) updatePositions(items []*domain.RankingItem, by, label string) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Revenue.Equal(items[j].Revenue) {
			return items[i].Revenue.GreaterThan(items[j].Revenue)
		}
		return items[i].Name < items[j].Name
	})

	for i, item := range items {
		item.Position = i + 1

		previous, err := s.rankingRepository.GetByName(item.Name, by, label)
		if err != nil {
			logrus.WithError(err).Warnf("Erro ao buscar posição anterior de %s no ranking", item.Name)
			continue
		}
		if previous == nil || previous.Position == 0 {
			continue
		}

		item.PreviousPosition = previous.Position
		item.PositionChange = previous.Position - item.Position
	}
}
