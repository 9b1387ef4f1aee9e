package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/internal/usecases/insighting"
	"github.com/chaivision/chai-vision-api/internal/usecases/ranking"
	"github.com/chaivision/chai-vision-api/pkg/apiErrors"
)

// parsePeriodQuery lê os parâmetros de período comuns aos endpoints de
// insights: mode (annual, quarterly, monthly), year, quarter e month.
func parsePeriodQuery(r *http.Request) (domain.PeriodKind, int, int, int, error) {
	query := r.URL.Query()

	mode := strings.ToLower(strings.TrimSpace(query.Get("mode")))
	if mode == "" {
		return "", 0, 0, 0, errors.New("parâmetro mode é obrigatório (annual, quarterly ou monthly)")
	}

	yearStr := query.Get("year")
	if yearStr == "" {
		return "", 0, 0, 0, errors.New("parâmetro year é obrigatório")
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return "", 0, 0, 0, errors.New("parâmetro year inválido")
	}

	quarter := 0
	if quarterStr := query.Get("quarter"); quarterStr != "" {
		quarter, err = strconv.Atoi(quarterStr)
		if err != nil {
			return "", 0, 0, 0, errors.New("parâmetro quarter inválido")
		}
	}

	month := 0
	if monthStr := query.Get("month"); monthStr != "" {
		month, err = strconv.Atoi(monthStr)
		if err != nil {
			return "", 0, 0, 0, errors.New("parâmetro month inválido")
		}
	}

	return domain.PeriodKind(mode), year, quarter, month, nil
}

// GetInsightsSummary monta o resumo de desempenho do dashboard: agregado do
// período, comparação com metas e crescimento sobre o período anterior.
func GetInsightsSummary(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, year, quarter, month, err := parsePeriodQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			return
		}

		query := r.URL.Query()

		filter := domain.SummaryFilter{
			Kind:    kind,
			Year:    year,
			Quarter: quarter,
			Month:   month,
			Brand:   query.Get("brand"),
			Channel: query.Get("channel"),
		}

		if compare := strings.ToLower(query.Get("compare")); compare != "" {
			switch domain.CompareMode(compare) {
			case domain.CompareYearOverYear, domain.ComparePeriodOverPeriod:
				filter.Compare = domain.CompareMode(compare)
			default:
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
					"Modo de comparação inválido. Valores aceitos: yoy, pop", nil)
				return
			}
		}

		if groupBy := query.Get("group_by"); groupBy != "" {
			fields, err := domain.ParseGroupFields(strings.Split(groupBy, ","))
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidGroupBy, err.Error(), nil)
				return
			}
			filter.GroupBy = fields
		}

		summary, err := service.GetSummary(filter)
		if err != nil {
			var periodErr *domain.InvalidPeriodError
			if errors.As(err, &periodErr) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, periodErr.Error(), nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar o resumo de desempenho", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// GetInsightsRanking devolve o ranking de marcas ou canais do período, com
// participação no total e variação de posição.
func GetInsightsRanking(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, year, quarter, month, err := parsePeriodQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			return
		}

		by := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("by")))
		if by == "" {
			by = domain.RankingByBrand
		}
		if by != domain.RankingByBrand && by != domain.RankingByChannel {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
				"Dimensão de ranking inválida. Valores aceitos: brand, channel", nil)
			return
		}

		period, err := domain.ResolvePeriod(kind, year, quarter, month)
		if err != nil {
			var periodErr *domain.InvalidPeriodError
			if errors.As(err, &periodErr) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, periodErr.Error(), nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao resolver o período", nil)
			return
		}

		response, err := service.GetRanking(by, period)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar o ranking", nil)
			return
		}

		// limit é opcional e corta apenas a resposta; o snapshot persistido
		// segue completo.
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "parâmetro limit inválido", nil)
				return
			}
			if limit < len(response.Ranking) {
				response.Ranking = response.Ranking[:limit]
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// GetAvailablePeriods lista os meses com dados para montar o seletor de
// período do dashboard.
func GetAvailablePeriods(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		periods, err := service.GetAvailablePeriods()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar períodos disponíveis", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(periods); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
