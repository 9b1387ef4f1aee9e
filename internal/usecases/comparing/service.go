package comparing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/pkg/utils"
)

// Comparator deriva os índices de desempenho do dashboard: realizado contra
// meta e crescimento contra o período anterior. Divisões por zero nunca
// estouram — viram os sentinelas nil descritos em domain.
type Comparator interface {
	// CompareToTargets cruza o agregado com a tabela de metas do ano do
	// período. Toda chave do agregado aparece na saída; chave sem meta
	// configurada sai com Target e PerformancePercent nil.
	CompareToTargets(agg *domain.AggregateResult, table domain.TargetTable) []domain.TargetComparison

	// Growth compara o período atual com o anterior chave a chave. Chaves
	// presentes em um lado só são tratadas como zero no outro.
	Growth(current, prior *domain.AggregateResult) *domain.ComparisonResult
}

type Service struct{}

func NewService() Comparator {
	return &Service{}
}

func (s *Service) CompareToTargets(agg *domain.AggregateResult, table domain.TargetTable) []domain.TargetComparison {
	if agg == nil {
		return []domain.TargetComparison{}
	}

	periodKey := agg.Period.Key()
	comparisons := make([]domain.TargetComparison, 0, len(agg.Keys))

	for _, key := range agg.Keys {
		parts := splitKey(key, agg.GroupBy)
		comparison := domain.TargetComparison{
			Key:     key,
			Brand:   parts[domain.GroupByBrand],
			Channel: parts[domain.GroupByChannel],
			Actual:  agg.RevenueOf(key),
		}

		if target, ok := lookupTarget(table, periodKey, comparison.Brand, comparison.Channel); ok {
			targetCopy := target
			comparison.Target = &targetCopy
			// Percentual só com meta positiva: uma chave pode estar
			// legitimamente em 0% de uma meta positiva, então meta ausente
			// (nil) nunca se confunde com 0%.
			if target.IsPositive() {
				pct, _ := comparison.Actual.Div(target).Mul(decimal.NewFromInt(100)).Float64()
				pct = utils.RoundWithTwoDecimalPlace(pct)
				comparison.PerformancePercent = &pct
			}
		}

		comparisons = append(comparisons, comparison)
	}

	return comparisons
}

// lookupTarget resolve a meta da chave conforme os campos presentes nela:
// marca+canal busca a folha exata; só marca soma os canais da marca; só
// canal soma as marcas do canal. Chaves sem marca nem canal (agrupamento
// por data ou sku) não têm meta.
func lookupTarget(table domain.TargetTable, periodKey, brand, channel string) (decimal.Decimal, bool) {
	switch {
	case brand != "" && channel != "":
		return table.Lookup(periodKey, brand, channel)
	case brand != "":
		return table.SumForBrand(periodKey, brand)
	case channel != "":
		return table.SumForChannel(periodKey, channel)
	default:
		return decimal.Zero, false
	}
}

func (s *Service) Growth(current, prior *domain.AggregateResult) *domain.ComparisonResult {
	result := &domain.ComparisonResult{
		Entries:      []domain.GrowthEntry{},
		TotalCurrent: decimal.Zero,
		TotalPrior:   decimal.Zero,
		TotalGrowth:  decimal.Zero,
	}
	if current != nil {
		result.Period = current.Period
		result.TotalCurrent = current.Total
	}
	if prior != nil {
		result.PriorPeriod = prior.Period
		result.TotalPrior = prior.Total
	}

	// Chaves do período atual primeiro, na ordem de primeira aparição;
	// chaves que só existem no período anterior vêm ao final (caíram a zero).
	if current != nil {
		for _, key := range current.Keys {
			result.Entries = append(result.Entries, growthEntry(key, current.RevenueOf(key), prior.RevenueOf(key)))
		}
	}
	if prior != nil {
		for _, key := range prior.Keys {
			if current != nil {
				if _, seen := current.Buckets[key]; seen {
					continue
				}
			}
			result.Entries = append(result.Entries, growthEntry(key, decimal.Zero, prior.RevenueOf(key)))
		}
	}

	result.TotalGrowth = result.TotalCurrent.Sub(result.TotalPrior)
	result.TotalGrowthPC = growthPercent(result.TotalCurrent, result.TotalPrior)

	return result
}

func growthEntry(key string, current, prior decimal.Decimal) domain.GrowthEntry {
	return domain.GrowthEntry{
		Key:           key,
		Current:       current,
		Prior:         prior,
		GrowthAmount:  current.Sub(prior),
		GrowthPercent: growthPercent(current, prior),
	}
}

// growthPercent aplica as regras de base zero:
//
//	base positiva        → percentual normal
//	base zero, atual > 0 → nil (crescimento novo/infinito, nunca 0%)
//	base zero, atual = 0 → 0%
func growthPercent(current, prior decimal.Decimal) *float64 {
	if prior.IsPositive() {
		pct, _ := current.Sub(prior).Div(prior).Mul(decimal.NewFromInt(100)).Float64()
		pct = utils.RoundWithTwoDecimalPlace(pct)
		return &pct
	}
	if current.IsPositive() {
		return nil
	}
	zero := 0.0
	return &zero
}

// splitKey reparte a chave composta nos campos do agrupamento, que têm
// ordem fixa dentro da chave.
func splitKey(key string, fields []domain.GroupField) map[domain.GroupField]string {
	parts := strings.Split(key, "|")
	mapped := make(map[domain.GroupField]string, len(fields))
	for i, field := range fields {
		if i < len(parts) {
			mapped[field] = parts[i]
		}
	}
	return mapped
}
