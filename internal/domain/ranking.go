// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dimensões suportadas pelo ranking de desempenho.
const (
	RankingByBrand   = "brand"
	RankingByChannel = "channel"
)

type RankingResponse struct {
	Ranking    []RankingItem `json:"ranking"`
	Period     Period        `json:"period"`
	By         string        `json:"by"`
	LastUpdate time.Time     `json:"last_update"`
}

type RankingItem struct {
	ID               int             `json:"id,omitempty"`
	Name             string          `json:"name"`
	By               string          `json:"by"`                // brand ou channel
	PeriodLabel      string          `json:"period_label"`      // Ex.: "Q1 2025", "2025"
	Revenue          decimal.Decimal `json:"revenue"`
	Units            int             `json:"units"`
	SharePercent     float64         `json:"share_percent"` // Participação no total do período
	Position         int             `json:"position"`
	PositionChange   int             `json:"position_change"` // Valor positivo = subiu, negativo = desceu, 0 = manteve
	PreviousPosition int             `json:"previous_position"`
	CreatedAt        time.Time       `json:"created_at,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at,omitempty"`
}
