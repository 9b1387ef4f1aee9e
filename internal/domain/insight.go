package domain

import (
	"fmt"
	"strings"
)

// SummaryFilter é a seleção do dashboard que parametriza o resumo de
// desempenho. Brand e Channel vazios (ou as pseudo-seleções "All Brands" /
// "All Channels") significam sem filtro.
type SummaryFilter struct {
	Kind    PeriodKind
	Year    int
	Quarter int
	Month   int
	Compare CompareMode
	GroupBy []GroupField
	Brand   string
	Channel string
}

// CacheKey é a forma canônica do filtro, usada como chave de cache.
// Seleções equivalentes (ex.: marca vazia e "All Brands") produzem a
// mesma chave.
func (f SummaryFilter) CacheKey() string {
	groups := make([]string, 0, len(f.GroupBy))
	for _, g := range f.GroupBy {
		groups = append(groups, string(g))
	}

	brand := f.Brand
	if IsAllBrands(brand) {
		brand = AllBrands
	}
	channel := f.Channel
	if IsAllChannels(channel) {
		channel = AllChannels
	}

	return fmt.Sprintf("%s:%d:q%d:m%d:%s:%s:%s:%s",
		f.Kind, f.Year, f.Quarter, f.Month, f.Compare,
		strings.Join(groups, ","), brand, channel)
}
