package domain

import (
	"errors"
	"fmt"
	"time"
)

// PeriodKind identifica a resolução do período selecionado no dashboard.
type PeriodKind string

const (
	PeriodAnnual    PeriodKind = "annual"
	PeriodQuarterly PeriodKind = "quarterly"
	PeriodMonthly   PeriodKind = "monthly"
)

// CompareMode define contra qual período anterior o crescimento é calculado.
type CompareMode string

const (
	CompareYearOverYear     CompareMode = "yoy"
	ComparePeriodOverPeriod CompareMode = "pop"
)

// Anos aceitos para registros e seleções. Datas fora dessa janela são
// rejeitadas na normalização e na resolução de período.
const (
	MinYear = 2000
	MaxYear = 2100
)

// ErrInvalidPeriod indica uma seleção de período impossível. Fatal para a
// chamada de agregação — nunca é corrigido silenciosamente para um padrão.
var ErrInvalidPeriod = errors.New("invalid period selection")

// InvalidPeriodError carrega a seleção rejeitada para a resposta da API.
type InvalidPeriodError struct {
	Kind    PeriodKind
	Year    int
	Quarter int
	Month   int
	Reason  string
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid period (kind=%s year=%d quarter=%d month=%d): %s",
		e.Kind, e.Year, e.Quarter, e.Month, e.Reason)
}

func (e *InvalidPeriodError) Unwrap() error {
	return ErrInvalidPeriod
}

// Period é um intervalo de datas derivado da seleção do dashboard. Nunca é
// persistido: é recalculado a cada requisição de agregação.
//
// Start e End são inclusivos, com granularidade de dia:
//
//	annual    2025 → 2025-01-01 .. 2025-12-31
//	quarterly Q1   → 2025-01-01 .. 2025-03-31
//	monthly   fev  → 2025-02-01 .. 2025-02-28 (29 em ano bissexto)
type Period struct {
	Kind    PeriodKind `json:"kind"`
	Year    int        `json:"year"`
	Quarter int        `json:"quarter,omitempty"`
	Month   int        `json:"month,omitempty"`
	Start   time.Time  `json:"start"`
	End     time.Time  `json:"end"`
}

// ResolvePeriod calcula o intervalo concreto de datas para a seleção.
func ResolvePeriod(kind PeriodKind, year, quarter, month int) (Period, error) {
	if year < MinYear || year > MaxYear {
		return Period{}, &InvalidPeriodError{Kind: kind, Year: year, Quarter: quarter, Month: month,
			Reason: fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear)}
	}

	switch kind {
	case PeriodAnnual:
		return Period{
			Kind:  PeriodAnnual,
			Year:  year,
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		}, nil

	case PeriodQuarterly:
		if quarter < 1 || quarter > 4 {
			return Period{}, &InvalidPeriodError{Kind: kind, Year: year, Quarter: quarter,
				Reason: "quarter must be between 1 and 4"}
		}
		start := time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		return Period{
			Kind:    PeriodQuarterly,
			Year:    year,
			Quarter: quarter,
			Start:   start,
			End:     start.AddDate(0, 3, -1),
		}, nil

	case PeriodMonthly:
		if month < 1 || month > 12 {
			return Period{}, &InvalidPeriodError{Kind: kind, Year: year, Month: month,
				Reason: "month must be between 1 and 12"}
		}
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		// AddDate cuida do tamanho do mês e de anos bissextos.
		return Period{
			Kind:  PeriodMonthly,
			Year:  year,
			Month: month,
			Start: start,
			End:   start.AddDate(0, 1, -1),
		}, nil

	default:
		return Period{}, &InvalidPeriodError{Kind: kind, Year: year, Quarter: quarter, Month: month,
			Reason: "kind must be annual, quarterly or monthly"}
	}
}

// PriorPeriod devolve o período anterior correspondente para comparação.
//
// yoy mantém tipo/trimestre/mês e recua um ano. pop recua um passo na
// própria granularidade, cruzando a virada do ano quando preciso
// (Q1→Q4 do ano anterior, janeiro→dezembro do ano anterior). Para período
// anual os dois modos coincidem.
func PriorPeriod(p Period, mode CompareMode) (Period, error) {
	switch mode {
	case CompareYearOverYear:
		return ResolvePeriod(p.Kind, p.Year-1, p.Quarter, p.Month)

	case ComparePeriodOverPeriod:
		switch p.Kind {
		case PeriodAnnual:
			return ResolvePeriod(PeriodAnnual, p.Year-1, 0, 0)
		case PeriodQuarterly:
			if p.Quarter == 1 {
				return ResolvePeriod(PeriodQuarterly, p.Year-1, 4, 0)
			}
			return ResolvePeriod(PeriodQuarterly, p.Year, p.Quarter-1, 0)
		case PeriodMonthly:
			if p.Month == 1 {
				return ResolvePeriod(PeriodMonthly, p.Year-1, 0, 12)
			}
			return ResolvePeriod(PeriodMonthly, p.Year, 0, p.Month-1)
		default:
			return Period{}, &InvalidPeriodError{Kind: p.Kind, Year: p.Year,
				Reason: "kind must be annual, quarterly or monthly"}
		}

	default:
		return Period{}, &InvalidPeriodError{Kind: p.Kind, Year: p.Year, Quarter: p.Quarter, Month: p.Month,
			Reason: fmt.Sprintf("unknown compare mode %q", mode)}
	}
}

// Contains verifica se a data cai dentro do período (inclusivo nas pontas).
// A comparação é por dia, ignorando hora e fuso.
func (p Period) Contains(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Key devolve a chave do período usada na tabela de metas:
// "annual", "q1".."q4" ou "m1".."m12".
func (p Period) Key() string {
	switch p.Kind {
	case PeriodQuarterly:
		return fmt.Sprintf("q%d", p.Quarter)
	case PeriodMonthly:
		return fmt.Sprintf("m%d", p.Month)
	default:
		return string(PeriodAnnual)
	}
}

// Label é o rótulo exibido no dashboard, ex.: "2025", "Q1 2025", "Feb 2025".
func (p Period) Label() string {
	switch p.Kind {
	case PeriodQuarterly:
		return fmt.Sprintf("Q%d %d", p.Quarter, p.Year)
	case PeriodMonthly:
		return fmt.Sprintf("%s %d", p.Start.Format("Jan"), p.Year)
	default:
		return fmt.Sprintf("%d", p.Year)
	}
}

// AvailablePeriods representa os períodos com dados nas tabelas de vendas,
// usados para montar o seletor de período do dashboard.
type AvailablePeriods struct {
	Periods []string `json:"periods"` // Lista de períodos no formato mm-yyyy
	Years   []string `json:"years"`   // Lista de anos únicos disponíveis
	Months  []string `json:"months"`  // Lista de meses únicos disponíveis
}
