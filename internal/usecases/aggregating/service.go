package aggregating

import (
	"fmt"

	"github.com/chaivision/chai-vision-api/internal/domain"
)

// Aggregator soma receita e unidades por chave de agrupamento dentro de um
// período resolvido.
type Aggregator interface {
	// Aggregate filtra os registros para o período (pontas inclusivas) e
	// acumula receita/unidades por chave composta. Conjunto filtrado vazio
	// devolve total zero sem chaves — resultado válido, não erro. A soma
	// usa decimal, então a soma das chaves bate exatamente com o total.
	Aggregate(records []domain.SalesRecord, period domain.Period, groupBy []domain.GroupField) (*domain.AggregateResult, error)
}

type Service struct{}

func NewService() Aggregator {
	return &Service{}
}

func (s *Service) Aggregate(records []domain.SalesRecord, period domain.Period, groupBy []domain.GroupField) (*domain.AggregateResult, error) {
	if len(groupBy) == 0 {
		return nil, fmt.Errorf("aggregate: group_by must name at least one field")
	}

	result := domain.NewAggregateResult(period, groupBy)

	for _, record := range records {
		if !period.Contains(record.Date) {
			continue
		}
		result.Add(domain.GroupKey(record, groupBy), record.Revenue, record.Units)
	}

	return result, nil
}
