package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mocks "github.com/chaivision/chai-vision-api/infrastructure/repository/mocks"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/pkg/apiErrors"
)

// targetsRequest injeta o parâmetro de rota :year do httprouter no contexto,
// como o router faz em produção.
func targetsRequest(method, year string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, "/v1/targets/"+year, body)
	params := httprouter.Params{{Key: "year", Value: year}}
	return req.WithContext(context.WithValue(req.Context(), httprouter.ParamsKey, params))
}

func targetEntry(periodKey, brand, channel string, amount int64) domain.TargetEntry {
	return domain.TargetEntry{
		Year:      2025,
		PeriodKey: periodKey,
		Brand:     brand,
		Channel:   channel,
		Amount:    decimal.NewFromInt(amount),
	}
}

func TestGetTargets(t *testing.T) {
	t.Run("Deve devolver as folhas e a tabela aninhada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetRepo := mocks.NewMockTargetRepository(ctrl)
		targetRepo.EXPECT().ListByYear(2025).Return([]domain.TargetEntry{
			targetEntry("annual", "ChaiCraft", "Amazon", 120000),
			targetEntry("q1", "ChaiCraft", "Amazon", 30000),
		}, nil)

		rec := httptest.NewRecorder()
		GetTargets(targetRepo)(rec, targetsRequest(http.MethodGet, "2025", nil))

		assert.Equal(t, http.StatusOK, rec.Code)

		var response TargetsResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 2025, response.Year)
		assert.Len(t, response.Entries, 2)

		amount, ok := response.Table.Lookup("q1", "ChaiCraft", "Amazon")
		assert.True(t, ok)
		assert.True(t, amount.Equal(decimal.NewFromInt(30000)))
	})

	t.Run("Deve devolver tabela vazia para ano sem metas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetRepo := mocks.NewMockTargetRepository(ctrl)
		targetRepo.EXPECT().ListByYear(2030).Return([]domain.TargetEntry{}, nil)

		rec := httptest.NewRecorder()
		GetTargets(targetRepo)(rec, targetsRequest(http.MethodGet, "2030", nil))

		assert.Equal(t, http.StatusOK, rec.Code)

		var response TargetsResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Empty(t, response.Entries)

		_, ok := response.Table.Lookup("annual", "ChaiCraft", "Amazon")
		assert.False(t, ok)
	})

	t.Run("Deve rejeitar ano inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetRepo := mocks.NewMockTargetRepository(ctrl)

		rec := httptest.NewRecorder()
		GetTargets(targetRepo)(rec, targetsRequest(http.MethodGet, "abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
	})

	t.Run("Deve responder 500 quando a consulta falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetRepo := mocks.NewMockTargetRepository(ctrl)
		targetRepo.EXPECT().ListByYear(2025).Return(nil, assert.AnError)

		rec := httptest.NewRecorder()
		GetTargets(targetRepo)(rec, targetsRequest(http.MethodGet, "2025", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, decodeAPIError(t, rec).Code)
	})
}

func TestPutTargets(t *testing.T) {
	t.Run("Deve normalizar as folhas e substituir o ano", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetRepo := mocks.NewMockTargetRepository(ctrl)
		targetRepo.EXPECT().ReplaceYear(2025, gomock.Any()).DoAndReturn(
			func(year int, entries []domain.TargetEntry) error {
				assert.Len(t, entries, 2)

				// Chave de período em caixa baixa, nomes sem espaços, ano da URL
				assert.Equal(t, 2025, entries[0].Year)
				assert.Equal(t, "q1", entries[0].PeriodKey)
				assert.Equal(t, "ChaiCraft", entries[0].Brand)
				assert.Equal(t, "Amazon", entries[0].Channel)
				assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(30000)))

				assert.Equal(t, "annual", entries[1].PeriodKey)
				assert.True(t, entries[1].Amount.Equal(decimal.NewFromInt(120000)))
				return nil
			})

		body := strings.NewReader(`{"entries": [
			{"period_key": " Q1 ", "brand": " ChaiCraft ", "channel": "Amazon", "amount": 30000},
			{"period_key": "annual", "brand": "ChaiCraft", "channel": "Amazon", "amount": 120000}
		]}`)

		rec := httptest.NewRecorder()
		PutTargets(targetRepo)(rec, targetsRequest(http.MethodPut, "2025", body))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Deve limpar o ano quando a lista vem vazia", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetRepo := mocks.NewMockTargetRepository(ctrl)
		targetRepo.EXPECT().ReplaceYear(2025, gomock.Len(0)).Return(nil)

		body := strings.NewReader(`{"entries": []}`)

		rec := httptest.NewRecorder()
		PutTargets(targetRepo)(rec, targetsRequest(http.MethodPut, "2025", body))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Deve rejeitar chave de período desconhecida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetRepo := mocks.NewMockTargetRepository(ctrl)

		body := strings.NewReader(`{"entries": [
			{"period_key": "q5", "brand": "ChaiCraft", "channel": "Amazon", "amount": 30000}
		]}`)

		rec := httptest.NewRecorder()
		PutTargets(targetRepo)(rec, targetsRequest(http.MethodPut, "2025", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
	})

	t.Run("Deve rejeitar folha sem marca ou canal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetRepo := mocks.NewMockTargetRepository(ctrl)

		body := strings.NewReader(`{"entries": [
			{"period_key": "q1", "brand": "", "channel": "Amazon", "amount": 30000}
		]}`)

		rec := httptest.NewRecorder()
		PutTargets(targetRepo)(rec, targetsRequest(http.MethodPut, "2025", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeAPIError(t, rec).Code)
	})

	t.Run("Deve rejeitar meta negativa", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetRepo := mocks.NewMockTargetRepository(ctrl)

		body := strings.NewReader(`{"entries": [
			{"period_key": "m3", "brand": "ChaiCraft", "channel": "Amazon", "amount": -10}
		]}`)

		rec := httptest.NewRecorder()
		PutTargets(targetRepo)(rec, targetsRequest(http.MethodPut, "2025", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
	})

	t.Run("Deve responder 500 quando a gravação falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetRepo := mocks.NewMockTargetRepository(ctrl)
		targetRepo.EXPECT().ReplaceYear(2025, gomock.Any()).Return(assert.AnError)

		body := strings.NewReader(`{"entries": [
			{"period_key": "q1", "brand": "ChaiCraft", "channel": "Amazon", "amount": 30000}
		]}`)

		rec := httptest.NewRecorder()
		PutTargets(targetRepo)(rec, targetsRequest(http.MethodPut, "2025", body))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, decodeAPIError(t, rec).Code)
	})
}
