package insighting

import (
	"testing"
	"time"

	cacheMocks "github.com/chaivision/chai-vision-api/infrastructure/cache/mocks"
	mocks "github.com/chaivision/chai-vision-api/infrastructure/repository/mocks"
	"github.com/chaivision/chai-vision-api/internal/config"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/internal/usecases/aggregating"
	"github.com/chaivision/chai-vision-api/internal/usecases/comparing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (Insighter, *mocks.MockSalesRecordRepository, *mocks.MockTargetRepository, *cacheMocks.MockSummaryCache) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	salesRepo := mocks.NewMockSalesRecordRepository(ctrl)
	targetRepo := mocks.NewMockTargetRepository(ctrl)
	summaryCache := cacheMocks.NewMockSummaryCache(ctrl)

	cfg := &config.Config{Insights: config.Insights{CacheTTLMinutes: 15}}
	service := NewService(cfg, salesRepo, targetRepo, aggregating.NewService(), comparing.NewService(), summaryCache)

	return service, salesRepo, targetRepo, summaryCache
}

func salesRecord(date, brand, channel, revenue string, units int) domain.SalesRecord {
	d, _ := time.Parse(time.DateOnly, date)
	return domain.SalesRecord{
		Date:    d,
		Brand:   brand,
		Channel: channel,
		Revenue: decimal.RequireFromString(revenue),
		Units:   units,
	}
}

func TestGetSummary(t *testing.T) {
	t.Run("Deve agregar o trimestre, cruzar com metas e calcular crescimento", func(t *testing.T) {
		service, salesRepo, targetRepo, summaryCache := newTestService(t)

		filter := domain.SummaryFilter{
			Kind:    domain.PeriodQuarterly,
			Year:    2025,
			Quarter: 1,
			Compare: domain.CompareYearOverYear,
			GroupBy: []domain.GroupField{domain.GroupByBrand},
		}

		summaryCache.EXPECT().Get(gomock.Any(), filter.CacheKey()).Return(nil, false, nil)

		currentStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		currentEnd := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
		salesRepo.EXPECT().ListBetween(currentStart, currentEnd).Return([]domain.SalesRecord{
			salesRecord("2025-01-05", "LifePro", "Amazon", "100.00", 2),
			salesRecord("2025-02-10", "LifePro", "Amazon", "50.00", 1),
		}, nil)

		priorStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		priorEnd := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
		salesRepo.EXPECT().ListBetween(priorStart, priorEnd).Return([]domain.SalesRecord{
			salesRecord("2024-01-20", "LifePro", "Amazon", "120.00", 2),
		}, nil)

		table := domain.NewTargetTable(2025)
		table.Set("q1", "LifePro", "Amazon", decimal.NewFromInt(600))
		targetRepo.EXPECT().GetByYear(2025).Return(table, nil)

		summaryCache.EXPECT().Set(gomock.Any(), filter.CacheKey(), gomock.Any(), 15*time.Minute).Return(nil)

		summary, err := service.GetSummary(filter)
		assert.NoError(t, err)

		// Duas linhas da mesma marca somadas sem perda
		assert.Equal(t, []string{"LifePro"}, summary.Aggregate.Keys)
		assert.True(t, summary.Aggregate.Total.Equal(decimal.RequireFromString("150.00")))
		assert.True(t, summary.Aggregate.Buckets["LifePro"].Revenue.Equal(summary.Aggregate.Total))
		assert.Equal(t, 3, summary.Aggregate.TotalUnits)

		// Meta de 600 com realizado de 150 → 25%
		assert.Len(t, summary.Targets, 1)
		assert.NotNil(t, summary.Targets[0].PerformancePercent)
		assert.Equal(t, 25.0, *summary.Targets[0].PerformancePercent)

		// Crescimento contra o mesmo trimestre do ano anterior: 150 vs 120
		assert.Len(t, summary.Growth.Entries, 1)
		assert.NotNil(t, summary.Growth.Entries[0].GrowthPercent)
		assert.Equal(t, 25.0, *summary.Growth.Entries[0].GrowthPercent)
		assert.Equal(t, priorStart, summary.Prior.Start)
	})

	t.Run("Deve devolver total zero para período sem registros", func(t *testing.T) {
		service, salesRepo, targetRepo, summaryCache := newTestService(t)

		filter := domain.SummaryFilter{
			Kind:    domain.PeriodQuarterly,
			Year:    2025,
			Quarter: 2,
		}

		summaryCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil)
		salesRepo.EXPECT().ListBetween(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
		targetRepo.EXPECT().GetByYear(2025).Return(domain.NewTargetTable(2025), nil)
		summaryCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		summary, err := service.GetSummary(filter)
		assert.NoError(t, err)
		assert.True(t, summary.Aggregate.Empty())
		assert.True(t, summary.Aggregate.Total.IsZero())
		assert.Empty(t, summary.Targets)
	})

	t.Run("Deve servir do cache sem tocar nos repositórios", func(t *testing.T) {
		service, _, _, summaryCache := newTestService(t)

		filter := domain.SummaryFilter{
			Kind: domain.PeriodAnnual,
			Year: 2025,
		}

		cached := &domain.InsightSummary{
			Period: domain.Period{Kind: domain.PeriodAnnual, Year: 2025},
		}
		summaryCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cached, true, nil)

		summary, err := service.GetSummary(filter)
		assert.NoError(t, err)
		assert.Equal(t, cached, summary)
	})

	t.Run("Deve rejeitar trimestre impossível sem corrigir para um padrão", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		_, err := service.GetSummary(domain.SummaryFilter{
			Kind:    domain.PeriodQuarterly,
			Year:    2025,
			Quarter: 5,
		})

		assert.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
	})

	t.Run("Deve filtrar por marca antes de agregar", func(t *testing.T) {
		service, salesRepo, targetRepo, summaryCache := newTestService(t)

		filter := domain.SummaryFilter{
			Kind:  domain.PeriodAnnual,
			Year:  2025,
			Brand: "LifePro",
		}

		currentStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		currentEnd := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
		priorStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		priorEnd := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

		summaryCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil)
		salesRepo.EXPECT().ListBetween(currentStart, currentEnd).Return([]domain.SalesRecord{
			salesRecord("2025-01-05", "LifePro", "Amazon", "100.00", 1),
			salesRecord("2025-01-06", "Acme", "Amazon", "999.00", 1),
		}, nil)
		salesRepo.EXPECT().ListBetween(priorStart, priorEnd).Return(nil, nil)
		targetRepo.EXPECT().GetByYear(2025).Return(domain.NewTargetTable(2025), nil)
		summaryCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		summary, err := service.GetSummary(filter)
		assert.NoError(t, err)
		assert.Equal(t, []string{"LifePro"}, summary.Aggregate.Keys)
		assert.True(t, summary.Aggregate.Total.Equal(decimal.RequireFromString("100.00")))

		// Sem período anterior com dados: crescimento novo fica sem percentual
		assert.Nil(t, summary.Growth.TotalGrowthPC)
	})

	t.Run("Deve usar a chave de cache canônica para seleções equivalentes", func(t *testing.T) {
		a := domain.SummaryFilter{Kind: domain.PeriodAnnual, Year: 2025, Brand: ""}
		b := domain.SummaryFilter{Kind: domain.PeriodAnnual, Year: 2025, Brand: domain.AllBrands}
		assert.Equal(t, a.CacheKey(), b.CacheKey())
	})
}

func TestGetAvailablePeriods(t *testing.T) {
	service, salesRepo, _, _ := newTestService(t)

	salesRepo.EXPECT().DistinctMonths().Return([]time.Time{
		time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	periods, err := service.GetAvailablePeriods()
	assert.NoError(t, err)

	assert.Equal(t, []string{"01-2025", "02-2025", "12-2024"}, periods.Periods)
	assert.Equal(t, []string{"2024", "2025"}, periods.Years)
	assert.Equal(t, []string{"01", "02", "12"}, periods.Months)
}
