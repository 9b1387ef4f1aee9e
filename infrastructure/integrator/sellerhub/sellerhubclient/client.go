package sellerhubclient

import (
	"net/http"
	"time"

	"github.com/chaivision/chai-vision-api/internal/config"
)

type Client interface {
	GetOrders(params OrdersConsultationParams) (OrdersConsultationResponse, error)
	EnsureValidSession() error
}

type SellerHubClient struct {
	httpClient *http.Client
	config     *config.Config
	sessions   *SessionManager
}

func NewClient(cfg *config.Config) Client {
	return &SellerHubClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config:   cfg,
		sessions: NewSessionManager(cfg),
	}
}

// EnsureValidSession garante uma sessão válida antes de consultas em lote
func (c *SellerHubClient) EnsureValidSession() error {
	return c.sessions.EnsureValidSession()
}
