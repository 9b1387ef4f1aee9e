package scheduler

import (
	"testing"
	"time"

	sellerhubdomain "github.com/chaivision/chai-vision-api/infrastructure/integrator/sellerhub/domain"
	sellerhubmocks "github.com/chaivision/chai-vision-api/infrastructure/integrator/sellerhub/mocks"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/internal/usecases/ingesting"
	ingestingmocks "github.com/chaivision/chai-vision-api/internal/usecases/ingesting/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func TestSellerHubSyncService_syncSalesWindow(t *testing.T) {
	// Referência fixa: 10 de março, janela de 7 dias para trás
	reference := time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)
	windowStart := reference.AddDate(0, 0, -7)
	expectedParams := sellerhubdomain.GetOrdersParams{
		StartDate: windowStart,
		EndDate:   reference,
	}

	feedRows := []domain.RawSalesRecord{
		{
			SaleDate:  stringPtr("2025-03-08"),
			BrandName: stringPtr("ChaiCraft"),
			ChanName:  stringPtr("Amazon"),
			SKUCode:   stringPtr("CC-001"),
			Amount:    120.50,
			Quantity:  3,
		},
	}

	tests := []struct {
		name     string
		setup    func(integrator *sellerhubmocks.MockSellerHubIntegrator, ingestor *ingestingmocks.MockIngestor)
		hasError bool
	}{
		{
			name: "Janela calculada a partir da referência e do lookback, lote rotulado com as datas",
			setup: func(integrator *sellerhubmocks.MockSellerHubIntegrator, ingestor *ingestingmocks.MockIngestor) {
				integrator.EXPECT().
					FetchSalesData(expectedParams).
					Return(feedRows, nil)

				ingestor.EXPECT().
					IngestFrom(gomock.Any(), domain.OriginFeed, "sellerhub 2025-03-03 a 2025-03-10").
					Return(&ingesting.Result{
						Audit: &domain.UploadAudit{RowsReceived: 1, RowsAccepted: 1},
					}, nil)
			},
			hasError: false,
		},
		{
			name: "Feed sem vendas na janela não aciona a ingestão",
			setup: func(integrator *sellerhubmocks.MockSellerHubIntegrator, ingestor *ingestingmocks.MockIngestor) {
				integrator.EXPECT().
					FetchSalesData(expectedParams).
					Return([]domain.RawSalesRecord{}, nil)
			},
			hasError: false,
		},
		{
			name: "Erro do provedor é propagado sem acionar a ingestão",
			setup: func(integrator *sellerhubmocks.MockSellerHubIntegrator, ingestor *ingestingmocks.MockIngestor) {
				integrator.EXPECT().
					FetchSalesData(expectedParams).
					Return(nil, assert.AnError)
			},
			hasError: true,
		},
		{
			name: "Erro da ingestão é propagado",
			setup: func(integrator *sellerhubmocks.MockSellerHubIntegrator, ingestor *ingestingmocks.MockIngestor) {
				integrator.EXPECT().
					FetchSalesData(expectedParams).
					Return(feedRows, nil)

				ingestor.EXPECT().
					IngestFrom(gomock.Any(), domain.OriginFeed, gomock.Any()).
					Return(nil, assert.AnError)
			},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockIntegrator := sellerhubmocks.NewMockSellerHubIntegrator(ctrl)
			mockIngestor := ingestingmocks.NewMockIngestor(ctrl)

			service := &SellerHubSyncService{
				integrator: mockIntegrator,
				ingestor:   mockIngestor,
				config: SellerHubSyncConfig{
					LookbackDays: 7,
				},
			}

			tt.setup(mockIntegrator, mockIngestor)

			err := service.syncSalesWindow(reference)

			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSellerHubSyncService_SyncSales_JaEmExecucao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma expectativa configurada: uma sincronização em andamento não
	// pode disparar outra busca no provedor
	mockIntegrator := sellerhubmocks.NewMockSellerHubIntegrator(ctrl)
	mockIngestor := ingestingmocks.NewMockIngestor(ctrl)

	service := &SellerHubSyncService{
		integrator:  mockIntegrator,
		ingestor:    mockIngestor,
		config:      SellerHubSyncConfig{LookbackDays: 7},
		syncRunning: true,
	}

	err := service.SyncSales()
	assert.NoError(t, err)
}

func TestSellerHubSyncService_GetStatus(t *testing.T) {
	startedAt := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	completedAt := startedAt.Add(42 * time.Second)

	service := &SellerHubSyncService{
		config: SellerHubSyncConfig{
			CronSchedule: "0 3 * * *",
			LookbackDays: 7,
			SyncEnabled:  true,
		},
		lastSyncStartedAt:   startedAt,
		lastSyncCompletedAt: completedAt,
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, 7, status["lookback_days"])
	assert.Equal(t, startedAt, status["last_sync_started_at"])
	assert.Equal(t, completedAt, status["last_sync_completed_at"])
}
