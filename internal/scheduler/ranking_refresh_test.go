package scheduler

import (
	"testing"
	"time"

	"github.com/chaivision/chai-vision-api/internal/domain"
	rankingmocks "github.com/chaivision/chai-vision-api/internal/usecases/ranking/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRankingRefreshService_refreshRankingsAt(t *testing.T) {
	// Referência fixa: 16 de agosto cai no Q3
	reference := time.Date(2025, 8, 16, 5, 0, 0, 0, time.UTC)

	monthly, err := domain.ResolvePeriod(domain.PeriodMonthly, 2025, 0, 8)
	assert.NoError(t, err)
	quarterly, err := domain.ResolvePeriod(domain.PeriodQuarterly, 2025, 3, 0)
	assert.NoError(t, err)
	annual, err := domain.ResolvePeriod(domain.PeriodAnnual, 2025, 0, 0)
	assert.NoError(t, err)

	periods := []domain.Period{monthly, quarterly, annual}

	tests := []struct {
		name     string
		setup    func(rankingService *rankingmocks.MockRankingService)
		validate func(t *testing.T, err error)
	}{
		{
			name: "Recalcula as duas dimensões para o mês, o trimestre e o ano correntes",
			setup: func(rankingService *rankingmocks.MockRankingService) {
				for _, period := range periods {
					rankingService.EXPECT().
						RefreshRanking(domain.RankingByBrand, period).
						Return([]*domain.RankingItem{}, nil)
					rankingService.EXPECT().
						RefreshRanking(domain.RankingByChannel, period).
						Return([]*domain.RankingItem{}, nil)
				}
			},
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "Falha em um período não impede o recálculo dos demais",
			setup: func(rankingService *rankingmocks.MockRankingService) {
				for _, period := range periods {
					rankingService.EXPECT().
						RefreshRanking(domain.RankingByChannel, period).
						Return([]*domain.RankingItem{}, nil)
				}

				// Só a dimensão de marca do mês falha; as outras cinco rodam
				rankingService.EXPECT().
					RefreshRanking(domain.RankingByBrand, monthly).
					Return(nil, assert.AnError)
				rankingService.EXPECT().
					RefreshRanking(domain.RankingByBrand, quarterly).
					Return([]*domain.RankingItem{}, nil)
				rankingService.EXPECT().
					RefreshRanking(domain.RankingByBrand, annual).
					Return([]*domain.RankingItem{}, nil)
			},
			validate: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "brand/Aug 2025")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRankingService := rankingmocks.NewMockRankingService(ctrl)
			service := &RankingRefreshService{
				rankingService: mockRankingService,
			}

			tt.setup(mockRankingService)

			err := service.refreshRankingsAt(reference)

			tt.validate(t, err)
		})
	}
}

func TestRankingRefreshService_RefreshRankings_JaEmExecucao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma expectativa configurada: recálculo em andamento não dispara outro
	mockRankingService := rankingmocks.NewMockRankingService(ctrl)

	service := &RankingRefreshService{
		rankingService: mockRankingService,
		syncRunning:    true,
	}

	err := service.RefreshRankings()
	assert.NoError(t, err)
}

func TestCurrentPeriods(t *testing.T) {
	tests := []struct {
		name            string
		reference       time.Time
		expectedLabels  []string
		expectedQuarter int
		expectedMonth   int
	}{
		{
			name:            "Janeiro cai no primeiro trimestre",
			reference:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			expectedLabels:  []string{"Jan 2025", "Q1 2025", "2025"},
			expectedQuarter: 1,
			expectedMonth:   1,
		},
		{
			name:            "Dezembro cai no quarto trimestre",
			reference:       time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC),
			expectedLabels:  []string{"Dec 2024", "Q4 2024", "2024"},
			expectedQuarter: 4,
			expectedMonth:   12,
		},
		{
			name:            "Junho fecha o segundo trimestre",
			reference:       time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
			expectedLabels:  []string{"Jun 2025", "Q2 2025", "2025"},
			expectedQuarter: 2,
			expectedMonth:   6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			periods, err := currentPeriods(tt.reference)
			assert.NoError(t, err)
			assert.Len(t, periods, 3)

			labels := make([]string, 0, len(periods))
			for _, period := range periods {
				labels = append(labels, period.Label())
			}
			assert.Equal(t, tt.expectedLabels, labels)

			assert.Equal(t, tt.expectedMonth, periods[0].Month)
			assert.Equal(t, tt.expectedQuarter, periods[1].Quarter)
		})
	}
}
