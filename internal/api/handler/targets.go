package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/chaivision/chai-vision-api/infrastructure/repository"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/pkg/apiErrors"
)

// TargetsResponse devolve as metas do ano nos dois formatos: a lista de
// folhas (como o PUT recebe) e a tabela aninhada que o dashboard consome.
type TargetsResponse struct {
	Year    int                  `json:"year"`
	Entries []domain.TargetEntry `json:"entries"`
	Table   *domain.TargetTable  `json:"table"`
}

// PutTargetsRequest substitui todas as metas do ano de uma vez.
type PutTargetsRequest struct {
	Entries []domain.TargetEntry `json:"entries"`
}

func yearFromPath(r *http.Request) (int, error) {
	yearStr := httprouter.ParamsFromContext(r.Context()).ByName("year")
	if yearStr == "" {
		return 0, fmt.Errorf("ano não fornecido")
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, fmt.Errorf("ano inválido")
	}

	return year, nil
}

// GetTargets devolve a tabela de metas do ano. Ano sem metas devolve a
// tabela vazia, não erro.
func GetTargets(targetRepo repository.TargetRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := yearFromPath(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		entries, err := targetRepo.ListByYear(year)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar metas", nil)
			return
		}

		table := domain.NewTargetTable(year)
		for _, entry := range entries {
			table.Set(entry.PeriodKey, entry.Brand, entry.Channel, entry.Amount)
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(TargetsResponse{
			Year:    year,
			Entries: entries,
			Table:   table,
		})
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// PutTargets substitui as metas do ano inteiro em uma transação: o
// dashboard nunca enxerga um ano pela metade. Lista vazia limpa o ano.
func PutTargets(targetRepo repository.TargetRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - PutTargets")

		year, err := yearFromPath(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		var req PutTargetsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		for i := range req.Entries {
			entry := &req.Entries[i]
			entry.Year = year
			entry.PeriodKey = strings.ToLower(strings.TrimSpace(entry.PeriodKey))
			entry.Brand = strings.TrimSpace(entry.Brand)
			entry.Channel = strings.TrimSpace(entry.Channel)

			if !domain.IsValidTargetPeriodKey(entry.PeriodKey) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat,
					fmt.Sprintf("chave de período inválida na linha %d: %q (aceitas: annual, q1..q4, m1..m12)", i+1, entry.PeriodKey), nil)
				return
			}
			if entry.Brand == "" || entry.Channel == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData,
					fmt.Sprintf("marca e canal são obrigatórios na linha %d", i+1), nil)
				return
			}
			if entry.Amount.IsNegative() {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat,
					fmt.Sprintf("meta negativa na linha %d", i+1), nil)
				return
			}
		}

		if err := targetRepo.ReplaceYear(year, req.Entries); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar metas", nil)
			return
		}

		logrus.WithFields(logrus.Fields{
			"year":    year,
			"entries": len(req.Entries),
		}).Info("Metas do ano substituídas")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"year":    year,
			"entries": len(req.Entries),
		})
	}
}
