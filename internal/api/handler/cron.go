package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/internal/scheduler"
	"github.com/chaivision/chai-vision-api/pkg/apiErrors"
	"github.com/chaivision/chai-vision-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeSellerHubSync  = "sellerhub-sync"
	CronJobTypeRankingRefresh = "ranking-refresh"
	CronJobTypeAll            = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	SellerHubSyncService  *scheduler.SellerHubSyncService
	RankingRefreshService *scheduler.RankingRefreshService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - apenas administradores e gerentes podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || (userClaims.UserRoleID != domain.RoleAdmin && userClaims.UserRoleID != domain.RoleManager) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores e gerentes podem executar cron jobs", nil)
			return
		}

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		// Validar o tipo de cron job
		switch cronType {
		case CronJobTypeSellerHubSync:
			// Executar sincronização de vendas do SellerHub
			if services.SellerHubSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização do SellerHub não disponível", nil)
				return
			}
			services.SellerHubSyncService.TriggerManualSync()

		case CronJobTypeRankingRefresh:
			// Executar recálculo do ranking
			if services.RankingRefreshService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recálculo de ranking não disponível", nil)
				return
			}
			services.RankingRefreshService.TriggerManualSync()

		case CronJobTypeAll:
			// Executar todas as sincronizações
			if services.SellerHubSyncService != nil {
				services.SellerHubSyncService.TriggerManualSync()
			}
			if services.RankingRefreshService != nil {
				services.RankingRefreshService.TriggerManualSync()
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: sellerhub-sync, ranking-refresh, all", nil)
			return
		}

		// Responder com sucesso
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		// Verificar permissões - apenas administradores e gerentes podem ver status das crons
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || (userClaims.UserRoleID != domain.RoleAdmin && userClaims.UserRoleID != domain.RoleManager) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores e gerentes podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"sellerhub-sync":  services.SellerHubSyncService.GetStatus(),
			"ranking-refresh": services.RankingRefreshService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
