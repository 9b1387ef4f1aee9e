package domain

import "github.com/shopspring/decimal"

// GrowthEntry compara uma chave entre o período atual e o anterior.
//
// GrowthPercent nil é o sentinela de "crescimento novo/infinito": base
// anterior zero com valor atual positivo. Nunca é renderizado como 0% —
// no JSON sai como null e o dashboard mostra o selo "New".
type GrowthEntry struct {
	Key           string          `json:"key"`
	Current       decimal.Decimal `json:"current"`
	Prior         decimal.Decimal `json:"prior"`
	GrowthAmount  decimal.Decimal `json:"growth_amount"`
	GrowthPercent *float64        `json:"growth_percent"`
}

// ComparisonResult é a saída do cálculo de crescimento: os dois agregados
// comparados e uma entrada por chave presente em qualquer um dos lados, na
// ordem do período atual (chaves só do anterior vêm ao final).
type ComparisonResult struct {
	Period        Period          `json:"period"`
	PriorPeriod   Period          `json:"prior_period"`
	Entries       []GrowthEntry   `json:"entries"`
	TotalCurrent  decimal.Decimal `json:"total_current"`
	TotalPrior    decimal.Decimal `json:"total_prior"`
	TotalGrowth   decimal.Decimal `json:"total_growth"`
	TotalGrowthPC *float64        `json:"total_growth_percent"`
}

// TargetComparison compara o realizado de uma chave com a meta configurada.
//
// Target e PerformancePercent nil são o sentinela de "sem meta": uma chave
// pode legitimamente estar em 0% de uma meta positiva, então ausência de
// meta nunca é confundida com 0%.
type TargetComparison struct {
	Key                string           `json:"key"`
	Brand              string           `json:"brand,omitempty"`
	Channel            string           `json:"channel,omitempty"`
	Actual             decimal.Decimal  `json:"actual"`
	Target             *decimal.Decimal `json:"target"`
	PerformancePercent *float64         `json:"performance_percent"`
}

// InsightSummary é o payload completo do dashboard para uma seleção:
// agregado do período, comparação com metas e crescimento contra o
// período anterior.
type InsightSummary struct {
	Period    Period             `json:"period"`
	Prior     Period             `json:"prior"`
	Aggregate *AggregateResult   `json:"aggregate"`
	Targets   []TargetComparison `json:"targets"`
	Growth    *ComparisonResult  `json:"growth"`
}
