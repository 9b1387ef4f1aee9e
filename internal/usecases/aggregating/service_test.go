package aggregating

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chaivision/chai-vision-api/internal/domain"
)

func mustPeriod(t *testing.T, kind domain.PeriodKind, year, quarter, month int) domain.Period {
	t.Helper()
	period, err := domain.ResolvePeriod(kind, year, quarter, month)
	assert.NoError(t, err)
	return period
}

func record(date string, brand, channel string, revenue string, units int) domain.SalesRecord {
	d, _ := time.Parse("2006-01-02", date)
	return domain.SalesRecord{
		Date:    d,
		Brand:   brand,
		Channel: channel,
		Revenue: decimal.RequireFromString(revenue),
		Units:   units,
	}
}

// Cenário de referência do dashboard: duas vendas da marca A na Amazon,
// uma em janeiro e outra em fevereiro de 2025.
func scenarioRecords() []domain.SalesRecord {
	return []domain.SalesRecord{
		record("2025-01-05", "A", "Amazon", "100", 2),
		record("2025-02-10", "A", "Amazon", "50", 1),
	}
}

func TestAggregate_PorMarcaNoTrimestre(t *testing.T) {
	service := NewService()
	q1 := mustPeriod(t, domain.PeriodQuarterly, 2025, 1, 0)

	result, err := service.Aggregate(scenarioRecords(), q1, []domain.GroupField{domain.GroupByBrand})

	assert.NoError(t, err)
	assert.Equal(t, []string{"A"}, result.Keys)
	assert.True(t, decimal.NewFromInt(150).Equal(result.RevenueOf("A")))
	assert.True(t, decimal.NewFromInt(150).Equal(result.Total))
	assert.Equal(t, 3, result.TotalUnits)
}

func TestAggregate_AnualCobreOMesmoTotal(t *testing.T) {
	service := NewService()
	annual := mustPeriod(t, domain.PeriodAnnual, 2025, 0, 0)

	result, err := service.Aggregate(scenarioRecords(), annual, []domain.GroupField{domain.GroupByBrand})

	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(result.Total))
}

func TestAggregate_TrimestreSemVendasFicaZerado(t *testing.T) {
	service := NewService()
	q2 := mustPeriod(t, domain.PeriodQuarterly, 2025, 2, 0)

	result, err := service.Aggregate(scenarioRecords(), q2, []domain.GroupField{domain.GroupByBrand})

	// Conjunto filtrado vazio é resultado válido, não erro.
	assert.NoError(t, err)
	assert.True(t, result.Empty())
	assert.True(t, decimal.Zero.Equal(result.Total))
	assert.Empty(t, result.Keys)
}

func TestAggregate_ConjuntoVazioNaoEhErro(t *testing.T) {
	service := NewService()
	annual := mustPeriod(t, domain.PeriodAnnual, 2025, 0, 0)

	result, err := service.Aggregate(nil, annual, []domain.GroupField{domain.GroupByBrand})

	assert.NoError(t, err)
	assert.True(t, result.Empty())
	assert.True(t, decimal.Zero.Equal(result.Total))
}

func TestAggregate_SomaDasChavesBateComOTotal(t *testing.T) {
	service := NewService()
	annual := mustPeriod(t, domain.PeriodAnnual, 2025, 0, 0)

	// Valores com centavos que acumulam erro em float64.
	records := []domain.SalesRecord{
		record("2025-01-01", "A", "Amazon", "0.10", 1),
		record("2025-01-02", "A", "Amazon", "0.20", 1),
		record("2025-02-01", "B", "Walmart", "0.30", 1),
		record("2025-03-01", "B", "Retail", "1000000.01", 1),
		record("2025-04-01", "C", "D2C", "0.07", 1),
	}

	result, err := service.Aggregate(records, annual, []domain.GroupField{domain.GroupByBrand})
	assert.NoError(t, err)

	sum := decimal.Zero
	for _, key := range result.Keys {
		sum = sum.Add(result.RevenueOf(key))
	}
	assert.True(t, sum.Equal(result.Total), "soma por chave %s difere do total %s", sum, result.Total)
	assert.True(t, decimal.RequireFromString("1000000.68").Equal(result.Total))
}

func TestAggregate_ChaveCompostaEmOrdemFixa(t *testing.T) {
	service := NewService()
	q1 := mustPeriod(t, domain.PeriodQuarterly, 2025, 1, 0)

	records := []domain.SalesRecord{
		record("2025-01-05", "A", "Amazon", "100", 0),
		record("2025-01-05", "A", "Walmart", "40", 0),
		record("2025-02-10", "A", "Amazon", "50", 0),
	}

	result, err := service.Aggregate(records, q1, []domain.GroupField{domain.GroupByChannel, domain.GroupByBrand})
	assert.NoError(t, err)

	// Ordem de campos na chave é fixa (marca antes de canal), independente
	// da ordem pedida; ordem das chaves é a de primeira aparição.
	assert.Equal(t, []string{"A|Amazon", "A|Walmart"}, result.Keys)
	assert.True(t, decimal.NewFromInt(150).Equal(result.RevenueOf("A|Amazon")))
	assert.True(t, decimal.NewFromInt(40).Equal(result.RevenueOf("A|Walmart")))
}

func TestAggregate_AgrupamentoPorData(t *testing.T) {
	service := NewService()
	month := mustPeriod(t, domain.PeriodMonthly, 2025, 0, 1)

	records := []domain.SalesRecord{
		record("2025-01-05", "A", "Amazon", "100", 0),
		record("2025-01-05", "B", "Walmart", "30", 0),
		record("2025-01-06", "A", "Amazon", "20", 0),
	}

	result, err := service.Aggregate(records, month, []domain.GroupField{domain.GroupByDate})
	assert.NoError(t, err)

	assert.Equal(t, []string{"2025-01-05", "2025-01-06"}, result.Keys)
	assert.True(t, decimal.NewFromInt(130).Equal(result.RevenueOf("2025-01-05")))
}

func TestAggregate_PontasDoPeriodoSaoInclusivas(t *testing.T) {
	service := NewService()
	feb24 := mustPeriod(t, domain.PeriodMonthly, 2024, 0, 2)

	records := []domain.SalesRecord{
		record("2024-02-01", "A", "Amazon", "10", 0),
		record("2024-02-29", "A", "Amazon", "20", 0), // bissexto
		record("2024-03-01", "A", "Amazon", "40", 0),
	}

	result, err := service.Aggregate(records, feb24, []domain.GroupField{domain.GroupByBrand})
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(result.Total))
}

func TestAggregate_SemCampoDeAgrupamentoEhErro(t *testing.T) {
	service := NewService()
	annual := mustPeriod(t, domain.PeriodAnnual, 2025, 0, 0)

	_, err := service.Aggregate(scenarioRecords(), annual, nil)
	assert.Error(t, err)
}

func TestAggregate_RegistrosDuplicadosSaoSomados(t *testing.T) {
	service := NewService()
	q1 := mustPeriod(t, domain.PeriodQuarterly, 2025, 1, 0)

	dup := record("2025-01-05", "A", "Amazon", "100", 1)
	result, err := service.Aggregate([]domain.SalesRecord{dup, dup}, q1, []domain.GroupField{domain.GroupByBrand})

	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(result.RevenueOf("A")))
	assert.Equal(t, 2, result.TotalUnits)
}
