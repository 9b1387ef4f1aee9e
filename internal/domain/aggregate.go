package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// GroupField é um campo de agrupamento aceito pelo agregador.
type GroupField string

const (
	GroupByBrand   GroupField = "brand"
	GroupByChannel GroupField = "channel"
	GroupByDate    GroupField = "date"
	GroupBySKU     GroupField = "sku"
)

// groupFieldOrder fixa a ordem dos campos na chave composta, independente
// da ordem pedida na requisição, para que a mesma seleção produza sempre a
// mesma chave.
var groupFieldOrder = []GroupField{GroupByBrand, GroupByChannel, GroupByDate, GroupBySKU}

// ParseGroupFields valida e ordena os campos de agrupamento vindos da API.
func ParseGroupFields(raw []string) ([]GroupField, error) {
	wanted := make(map[GroupField]bool, len(raw))
	for _, f := range raw {
		switch GroupField(strings.ToLower(strings.TrimSpace(f))) {
		case GroupByBrand:
			wanted[GroupByBrand] = true
		case GroupByChannel:
			wanted[GroupByChannel] = true
		case GroupByDate:
			wanted[GroupByDate] = true
		case GroupBySKU:
			wanted[GroupBySKU] = true
		default:
			return nil, fmt.Errorf("unknown group_by field %q", f)
		}
	}

	fields := make([]GroupField, 0, len(wanted))
	for _, f := range groupFieldOrder {
		if wanted[f] {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("group_by must name at least one of brand, channel, date, sku")
	}
	return fields, nil
}

// GroupKey monta a chave composta do registro para os campos pedidos.
// Partes são unidas com "|" na ordem fixa marca, canal, data, sku.
func GroupKey(rec SalesRecord, fields []GroupField) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f {
		case GroupByBrand:
			parts = append(parts, rec.Brand)
		case GroupByChannel:
			parts = append(parts, rec.Channel)
		case GroupByDate:
			parts = append(parts, rec.Date.Format("2006-01-02"))
		case GroupBySKU:
			parts = append(parts, rec.SKU)
		}
	}
	return strings.Join(parts, "|")
}

// AggregateBucket acumula receita e unidades de uma chave de agrupamento.
type AggregateBucket struct {
	Revenue decimal.Decimal `json:"revenue"`
	Units   int             `json:"units"`
}

// AggregateResult é a saída do agregador para um período. Keys preserva a
// ordem de primeira aparição das chaves para saída determinística; a soma
// das receitas por chave é sempre exatamente igual a Total (aritmética
// decimal, sem deriva de ponto flutuante).
type AggregateResult struct {
	Period     Period                      `json:"period"`
	GroupBy    []GroupField                `json:"group_by"`
	Keys       []string                    `json:"keys"`
	Buckets    map[string]*AggregateBucket `json:"buckets"`
	Total      decimal.Decimal             `json:"total"`
	TotalUnits int                         `json:"total_units"`
}

// NewAggregateResult cria um resultado vazio (total zero, sem chaves).
// Conjunto vazio é um resultado válido, não um erro.
func NewAggregateResult(period Period, groupBy []GroupField) *AggregateResult {
	return &AggregateResult{
		Period:  period,
		GroupBy: groupBy,
		Keys:    []string{},
		Buckets: map[string]*AggregateBucket{},
		Total:   decimal.Zero,
	}
}

// Add acumula receita e unidades na chave, criando o balde na primeira
// aparição.
func (r *AggregateResult) Add(key string, revenue decimal.Decimal, units int) {
	bucket, ok := r.Buckets[key]
	if !ok {
		bucket = &AggregateBucket{Revenue: decimal.Zero}
		r.Buckets[key] = bucket
		r.Keys = append(r.Keys, key)
	}
	bucket.Revenue = bucket.Revenue.Add(revenue)
	bucket.Units += units
	r.Total = r.Total.Add(revenue)
	r.TotalUnits += units
}

// RevenueOf devolve a receita acumulada da chave, zero quando ausente.
func (r *AggregateResult) RevenueOf(key string) decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	if bucket, ok := r.Buckets[key]; ok {
		return bucket.Revenue
	}
	return decimal.Zero
}

// Empty informa se o período não tinha registros. Callers distinguem esse
// estado de um erro: total zero com HTTP 200.
func (r *AggregateResult) Empty() bool {
	return r == nil || len(r.Keys) == 0
}
