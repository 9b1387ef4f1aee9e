package normalizing

import (
	"fmt"
	"strings"

	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/pkg/utils"
)

// Normalizer converte linhas cruas de provedores no formato canônico.
type Normalizer interface {
	// NormalizeBatch normaliza um lote inteiro. Linhas inválidas são puladas
	// e devolvidas na lista de erros com o índice original — o lote nunca
	// aborta por causa de uma linha ruim. Linhas duplicadas são preservadas.
	NormalizeBatch(rows []domain.RawSalesRecord, registry domain.Registry) ([]domain.SalesRecord, []*RecordError)
}

type Service struct{}

func NewService() Normalizer {
	return &Service{}
}

// Tabela de mapeamento de campos aplicada uma única vez nesta fronteira.
// Cada provedor usa uma grafia; consumidores só veem o nome canônico.
//
//	date    ← date | sale_date
//	brand   ← brand | brand_name
//	channel ← channel | channel_name
//	sku     ← sku | sku_code
//	revenue ← revenue | amount
//	units   ← units | quantity
func (s *Service) NormalizeBatch(rows []domain.RawSalesRecord, registry domain.Registry) ([]domain.SalesRecord, []*RecordError) {
	records := make([]domain.SalesRecord, 0, len(rows))
	rowErrors := make([]*RecordError, 0)

	for i, raw := range rows {
		record, rowErr := normalizeRecord(raw, registry)
		if rowErr != nil {
			rowErr.Index = i
			rowErrors = append(rowErrors, rowErr)
			continue
		}
		records = append(records, record)
	}

	return records, rowErrors
}

func normalizeRecord(raw domain.RawSalesRecord, registry domain.Registry) (domain.SalesRecord, *RecordError) {
	dateStr := firstString(raw.Date, raw.SaleDate)
	if dateStr == "" {
		return domain.SalesRecord{}, NewRecordError(ErrMissingDate, "date", "no date field present")
	}

	date, err := utils.ParseFlexibleDate(dateStr)
	if err != nil {
		return domain.SalesRecord{}, NewRecordError(ErrInvalidDate, "date", err.Error())
	}
	if date.Year() < domain.MinYear || date.Year() > domain.MaxYear {
		return domain.SalesRecord{}, NewRecordError(ErrMissingDate, "date",
			fmt.Sprintf("year %d outside accepted window %d-%d", date.Year(), domain.MinYear, domain.MaxYear))
	}

	brand := firstString(raw.Brand, raw.BrandName)
	if brand == "" {
		return domain.SalesRecord{}, NewRecordError(ErrMissingBrand, "brand", "no brand field present")
	}

	channelName := firstString(raw.Channel, raw.ChanName)
	if channelName == "" {
		return domain.SalesRecord{}, NewRecordError(ErrUnknownChannel, "channel", "no channel field present")
	}
	channel, ok := registry.CanonicalChannel(channelName)
	if !ok {
		return domain.SalesRecord{}, NewRecordError(ErrUnknownChannel, "channel",
			fmt.Sprintf("channel %q not in the configured registry", channelName))
	}

	revenue, err := utils.CoerceDecimal(firstValue(raw.Revenue, raw.Amount))
	if err != nil {
		return domain.SalesRecord{}, NewRecordError(ErrInvalidRevenue, "revenue", err.Error())
	}
	if revenue.IsNegative() {
		return domain.SalesRecord{}, NewRecordError(ErrInvalidRevenue, "revenue",
			fmt.Sprintf("negative revenue %s", revenue.String()))
	}

	units, err := utils.CoerceInt(firstValue(raw.Units, raw.Quantity))
	if err != nil {
		return domain.SalesRecord{}, NewRecordError(ErrInvalidUnits, "units", err.Error())
	}
	if units < 0 {
		return domain.SalesRecord{}, NewRecordError(ErrInvalidUnits, "units",
			fmt.Sprintf("negative units %d", units))
	}

	return domain.SalesRecord{
		Date:    date,
		Brand:   brand,
		Channel: channel,
		SKU:     firstString(raw.SKU, raw.SKUCode),
		Revenue: revenue,
		Units:   units,
	}, nil
}

// firstString devolve o primeiro ponteiro não vazio, já sem espaços nas
// pontas.
func firstString(candidates ...*string) string {
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if trimmed := strings.TrimSpace(*c); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// firstValue devolve o primeiro valor não nulo.
func firstValue(candidates ...any) any {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}
