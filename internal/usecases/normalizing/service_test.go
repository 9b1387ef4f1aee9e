package normalizing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chaivision/chai-vision-api/internal/domain"
)

var testRegistry = domain.Registry{
	Channels: []string{"Amazon", "Walmart", "Retail", "D2C"},
	Brands:   []string{"LifePro", "Zulay", "NutriBlend"},
}

func TestNormalizeBatch(t *testing.T) {
	service := NewService()

	tests := []struct {
		name      string
		raw       domain.RawSalesRecord
		expected  *domain.SalesRecord
		errorBase error
	}{
		{
			name: "Campos canônicos devem ser aceitos",
			raw: domain.RawSalesRecord{
				Date:    stringPtr("2025-01-05"),
				Brand:   stringPtr("LifePro"),
				Channel: stringPtr("Amazon"),
				Revenue: 100.0,
			},
			expected: &domain.SalesRecord{
				Brand:   "LifePro",
				Channel: "Amazon",
				Revenue: decimal.NewFromInt(100),
			},
		},
		{
			name: "Grafias brand_name e channel_name devem ser aceitas",
			raw: domain.RawSalesRecord{
				SaleDate:  stringPtr("2025-02-10"),
				BrandName: stringPtr("Zulay"),
				ChanName:  stringPtr("Walmart"),
				Amount:    "50.25",
				Quantity:  3.0,
			},
			expected: &domain.SalesRecord{
				Brand:   "Zulay",
				Channel: "Walmart",
				Revenue: decimal.RequireFromString("50.25"),
				Units:   3,
			},
		},
		{
			name: "Canal deve ser canonizado ignorando caixa",
			raw: domain.RawSalesRecord{
				Date:    stringPtr("2025-03-01"),
				Brand:   stringPtr("LifePro"),
				Channel: stringPtr("amazon"),
				Revenue: "10",
			},
			expected: &domain.SalesRecord{
				Brand:   "LifePro",
				Channel: "Amazon",
				Revenue: decimal.NewFromInt(10),
			},
		},
		{
			name: "Receita em string com símbolo de moeda deve ser coagida",
			raw: domain.RawSalesRecord{
				Date:    stringPtr("2025-03-01"),
				Brand:   stringPtr("LifePro"),
				Channel: stringPtr("Retail"),
				Revenue: "$1,234.56",
			},
			expected: &domain.SalesRecord{
				Brand:   "LifePro",
				Channel: "Retail",
				Revenue: decimal.RequireFromString("1234.56"),
			},
		},
		{
			name: "Data ausente deve ser rejeitada",
			raw: domain.RawSalesRecord{
				Brand:   stringPtr("LifePro"),
				Channel: stringPtr("Amazon"),
				Revenue: 10.0,
			},
			errorBase: ErrMissingDate,
		},
		{
			name: "Data ilegível deve ser rejeitada",
			raw: domain.RawSalesRecord{
				Date:    stringPtr("quinta-feira"),
				Brand:   stringPtr("LifePro"),
				Channel: stringPtr("Amazon"),
				Revenue: 10.0,
			},
			errorBase: ErrInvalidDate,
		},
		{
			name: "Ano fora da janela aceita deve ser rejeitado",
			raw: domain.RawSalesRecord{
				Date:    stringPtr("1970-01-01"),
				Brand:   stringPtr("LifePro"),
				Channel: stringPtr("Amazon"),
				Revenue: 10.0,
			},
			errorBase: ErrMissingDate,
		},
		{
			name: "Marca ausente deve ser rejeitada",
			raw: domain.RawSalesRecord{
				Date:    stringPtr("2025-01-05"),
				Channel: stringPtr("Amazon"),
				Revenue: 10.0,
			},
			errorBase: ErrMissingBrand,
		},
		{
			name: "Canal fora do cadastro deve ser rejeitado",
			raw: domain.RawSalesRecord{
				Date:    stringPtr("2025-01-05"),
				Brand:   stringPtr("LifePro"),
				Channel: stringPtr("eBay"),
				Revenue: 10.0,
			},
			errorBase: ErrUnknownChannel,
		},
		{
			name: "Receita negativa deve ser rejeitada",
			raw: domain.RawSalesRecord{
				Date:    stringPtr("2025-01-05"),
				Brand:   stringPtr("LifePro"),
				Channel: stringPtr("Amazon"),
				Revenue: -5.0,
			},
			errorBase: ErrInvalidRevenue,
		},
		{
			name: "Receita não numérica deve ser rejeitada",
			raw: domain.RawSalesRecord{
				Date:    stringPtr("2025-01-05"),
				Brand:   stringPtr("LifePro"),
				Channel: stringPtr("Amazon"),
				Revenue: "cem reais",
			},
			errorBase: ErrInvalidRevenue,
		},
		{
			name: "Receita ausente deve ser rejeitada",
			raw: domain.RawSalesRecord{
				Date:    stringPtr("2025-01-05"),
				Brand:   stringPtr("LifePro"),
				Channel: stringPtr("Amazon"),
			},
			errorBase: ErrInvalidRevenue,
		},
		{
			name: "Quantidade negativa deve ser rejeitada",
			raw: domain.RawSalesRecord{
				Date:    stringPtr("2025-01-05"),
				Brand:   stringPtr("LifePro"),
				Channel: stringPtr("Amazon"),
				Revenue: 10.0,
				Units:   -2.0,
			},
			errorBase: ErrInvalidUnits,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, rowErrors := service.NormalizeBatch([]domain.RawSalesRecord{tt.raw}, testRegistry)

			if tt.errorBase != nil {
				assert.Empty(t, records)
				assert.Len(t, rowErrors, 1)
				assert.True(t, errors.Is(rowErrors[0], tt.errorBase))
				assert.True(t, IsValidationError(rowErrors[0]))
				return
			}

			assert.Empty(t, rowErrors)
			assert.Len(t, records, 1)
			assert.Equal(t, tt.expected.Brand, records[0].Brand)
			assert.Equal(t, tt.expected.Channel, records[0].Channel)
			assert.True(t, tt.expected.Revenue.Equal(records[0].Revenue),
				"receita esperada %s, obtida %s", tt.expected.Revenue, records[0].Revenue)
			assert.Equal(t, tt.expected.Units, records[0].Units)
		})
	}
}

func TestNormalizeBatch_LoteNuncaAborta(t *testing.T) {
	service := NewService()

	rows := []domain.RawSalesRecord{
		{Date: stringPtr("2025-01-05"), Brand: stringPtr("LifePro"), Channel: stringPtr("Amazon"), Revenue: 100.0},
		{Date: stringPtr("data-invalida"), Brand: stringPtr("LifePro"), Channel: stringPtr("Amazon"), Revenue: 50.0},
		{Date: stringPtr("2025-01-06"), BrandName: stringPtr("Zulay"), ChanName: stringPtr("Walmart"), Amount: 75.0},
		{Date: stringPtr("2025-01-07"), Brand: stringPtr("LifePro"), Channel: stringPtr("eBay"), Revenue: 30.0},
		{Date: stringPtr("2025-01-08"), Brand: stringPtr("NutriBlend"), Channel: stringPtr("D2C"), Revenue: "20"},
	}

	records, rowErrors := service.NormalizeBatch(rows, testRegistry)

	// Três linhas boas passam; as duas ruins são relatadas com o índice original.
	assert.Len(t, records, 3)
	assert.Len(t, rowErrors, 2)
	assert.Equal(t, 1, rowErrors[0].Index)
	assert.Equal(t, 3, rowErrors[1].Index)
}

func TestNormalizeBatch_DuplicadasSaoPreservadas(t *testing.T) {
	service := NewService()

	row := domain.RawSalesRecord{
		Date:    stringPtr("2025-01-05"),
		Brand:   stringPtr("LifePro"),
		Channel: stringPtr("Amazon"),
		Revenue: 100.0,
	}

	records, rowErrors := service.NormalizeBatch([]domain.RawSalesRecord{row, row}, testRegistry)

	// Sem deduplicação: uploads anexam aos dados existentes e as linhas
	// repetidas são somadas na agregação.
	assert.Empty(t, rowErrors)
	assert.Len(t, records, 2)
	assert.Equal(t, records[0].Brand, records[1].Brand)
}

func stringPtr(s string) *string {
	return &s
}
