package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TargetTable guarda as metas de receita de um ano:
// chave de período ("annual", "q1".."q4", "m1".."m12") → marca → canal → meta.
// Entradas ausentes significam "sem meta", nunca zero.
type TargetTable struct {
	Year    int                                              `json:"year"`
	Targets map[string]map[string]map[string]decimal.Decimal `json:"targets"`
}

func NewTargetTable(year int) *TargetTable {
	return &TargetTable{
		Year:    year,
		Targets: map[string]map[string]map[string]decimal.Decimal{},
	}
}

// Lookup busca a meta de (período, marca, canal). O segundo retorno indica
// se existe meta configurada — meta ausente é diferente de meta zero.
func (t TargetTable) Lookup(periodKey, brand, channel string) (decimal.Decimal, bool) {
	brands, ok := t.Targets[periodKey]
	if !ok {
		return decimal.Zero, false
	}
	channels, ok := brands[brand]
	if !ok {
		return decimal.Zero, false
	}
	amount, ok := channels[channel]
	return amount, ok
}

// SumForBrand soma as metas de todos os canais da marca no período. O
// segundo retorno indica se havia pelo menos uma folha configurada — sem
// folhas não há meta, o que é diferente de meta zero.
func (t TargetTable) SumForBrand(periodKey, brand string) (decimal.Decimal, bool) {
	channels, ok := t.Targets[periodKey][brand]
	if !ok || len(channels) == 0 {
		return decimal.Zero, false
	}
	sum := decimal.Zero
	for _, amount := range channels {
		sum = sum.Add(amount)
	}
	return sum, true
}

// SumForChannel soma as metas do canal em todas as marcas do período.
func (t TargetTable) SumForChannel(periodKey, channel string) (decimal.Decimal, bool) {
	brands, ok := t.Targets[periodKey]
	if !ok {
		return decimal.Zero, false
	}
	sum := decimal.Zero
	found := false
	for _, channels := range brands {
		if amount, ok := channels[channel]; ok {
			sum = sum.Add(amount)
			found = true
		}
	}
	return sum, found
}

// Set grava a meta de (período, marca, canal), criando os níveis que
// faltarem.
func (t *TargetTable) Set(periodKey, brand, channel string, amount decimal.Decimal) {
	if t.Targets == nil {
		t.Targets = map[string]map[string]map[string]decimal.Decimal{}
	}
	if t.Targets[periodKey] == nil {
		t.Targets[periodKey] = map[string]map[string]decimal.Decimal{}
	}
	if t.Targets[periodKey][brand] == nil {
		t.Targets[periodKey][brand] = map[string]decimal.Decimal{}
	}
	t.Targets[periodKey][brand][channel] = amount
}

// IsValidTargetPeriodKey valida as chaves aceitas pela tabela de metas:
// "annual", "q1".."q4" ou "m1".."m12".
func IsValidTargetPeriodKey(key string) bool {
	switch key {
	case "annual", "q1", "q2", "q3", "q4":
		return true
	}
	if strings.HasPrefix(key, "m") {
		month, err := strconv.Atoi(key[1:])
		return err == nil && month >= 1 && month <= 12
	}
	return false
}

// TargetEntry é uma folha da tabela de metas no formato linha-a-linha usado
// pelo repositório e pelo endpoint de administração.
type TargetEntry struct {
	Year      int             `json:"year"`
	PeriodKey string          `json:"period_key"`
	Brand     string          `json:"brand"`
	Channel   string          `json:"channel"`
	Amount    decimal.Decimal `json:"amount"`
}
