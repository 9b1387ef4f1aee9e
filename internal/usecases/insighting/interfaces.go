package insighting

import (
	"github.com/chaivision/chai-vision-api/internal/domain"
)

// Insighter monta as respostas de desempenho do dashboard.
type Insighter interface {
	// GetSummary devolve o resumo completo de uma seleção: agregado do
	// período, comparação com metas e crescimento contra o período
	// anterior. Seleções impossíveis devolvem domain.InvalidPeriodError;
	// período sem registros devolve total zero, não erro.
	GetSummary(filter domain.SummaryFilter) (*domain.InsightSummary, error)

	// GetAvailablePeriods devolve os meses com dados na base, no formato
	// mm-yyyy, para montar o seletor de período do dashboard.
	GetAvailablePeriods() (*domain.AvailablePeriods, error)
}
