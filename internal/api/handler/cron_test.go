package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"

	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/pkg/apiErrors"
	"github.com/chaivision/chai-vision-api/pkg/middleware"
)

// cronRequest monta uma requisição de execução manual com o papel do usuário
// e o tipo de job nos mesmos lugares em que o router e o middleware de
// autenticação os colocam.
func cronRequest(roleID int, cronType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/cron/"+cronType+"/run", nil)

	ctx := context.WithValue(req.Context(), middleware.ContextKeyUser, &domain.Claims{
		UserID:     1,
		UserRoleID: roleID,
	})
	ctx = context.WithValue(ctx, httprouter.ParamsKey, httprouter.Params{{Key: "type", Value: cronType}})

	return req.WithContext(ctx)
}

func TestRunCronJob(t *testing.T) {
	t.Run("Deve negar execução para usuário sem privilégio", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RunCronJob(CronJobServices{})(rec, cronRequest(domain.RoleViewer, CronJobTypeSellerHubSync))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, apiErrors.ErrInsufficientPrivilege, decodeAPIError(t, rec).Code)
	})

	t.Run("Deve negar execução sem usuário autenticado no contexto", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/cron/all/run", nil)
		rec := httptest.NewRecorder()

		RunCronJob(CronJobServices{})(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Deve rejeitar tipo de job desconhecido", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RunCronJob(CronJobServices{})(rec, cronRequest(domain.RoleAdmin, "backup"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRequest, decodeAPIError(t, rec).Code)
	})

	t.Run("Deve avisar quando o serviço pedido não está disponível", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RunCronJob(CronJobServices{})(rec, cronRequest(domain.RoleManager, CronJobTypeRankingRefresh))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrInternalServer, decodeAPIError(t, rec).Code)
	})
}
