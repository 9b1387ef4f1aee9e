package handler

import (
	"net/http"

	"github.com/chaivision/chai-vision-api/infrastructure/database/postgres"
	"github.com/chaivision/chai-vision-api/infrastructure/repository"
	"github.com/chaivision/chai-vision-api/internal/api/handler/router"
	"github.com/chaivision/chai-vision-api/internal/usecases/authenticating"
	"github.com/chaivision/chai-vision-api/internal/usecases/ingesting"
	"github.com/chaivision/chai-vision-api/internal/usecases/insighting"
	"github.com/chaivision/chai-vision-api/internal/usecases/ranking"
	"github.com/chaivision/chai-vision-api/pkg/middleware"
)

func Healthcheck(conn *postgres.Connection) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(conn),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Sales agrupa a ingestão por upload, a consulta dos registros canônicos,
// a exportação em CSV e a auditoria dos lotes.
func Sales(
	ingestor ingesting.Ingestor,
	salesRepo repository.SalesRecordRepository,
	auditRepo repository.UploadAuditRepository,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sales/upload",
			Method:      http.MethodPost,
			Handler:     UploadSales(ingestor),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/sales/records",
			Method:      http.MethodGet,
			Handler:     ListSalesRecords(salesRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/export",
			Method:      http.MethodGet,
			Handler:     ExportSales(salesRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/audits",
			Method:      http.MethodGet,
			Handler:     ListUploadAudits(auditRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}

func Insights(service insighting.Insighter, rankingService ranking.RankingService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/insights/summary",
			Method:      http.MethodGet,
			Handler:     GetInsightsSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/insights/ranking",
			Method:      http.MethodGet,
			Handler:     GetInsightsRanking(rankingService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/insights/periods",
			Method:      http.MethodGet,
			Handler:     GetAvailablePeriods(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Targets(targetRepo repository.TargetRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/targets/:year",
			Method:      http.MethodGet,
			Handler:     GetTargets(targetRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/targets/:year",
			Method:      http.MethodPut,
			Handler:     PutTargets(targetRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Registry(registryRepo repository.RegistryRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/registry",
			Method:      http.MethodGet,
			Handler:     GetRegistry(registryRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/registry/brands",
			Method:      http.MethodPost,
			Handler:     AddBrand(registryRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/registry/channels",
			Method:      http.MethodPost,
			Handler:     AddChannel(registryRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}
