package sellerhubclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	sellerhubdomain "github.com/chaivision/chai-vision-api/infrastructure/integrator/sellerhub/domain"
)

type OrdersConsultationParams struct {
	StartDate string
	EndDate   string
}

type OrdersConsultationResponse []sellerhubdomain.FeedOrder

type ordersPage struct {
	Orders  []sellerhubdomain.FeedOrder `json:"orders"`
	HasMore bool                        `json:"has_more"`
}

// GetOrders busca os pedidos do período, página a página. Uma sessão
// expirada no meio da varredura é renovada uma única vez.
func (c *SellerHubClient) GetOrders(params OrdersConsultationParams) (OrdersConsultationResponse, error) {
	var response OrdersConsultationResponse

	if err := c.sessions.EnsureValidSession(); err != nil {
		return response, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	retried := false
	for page := 1; ; page++ {
		result, err := c.getOrdersPage(ctx, params, page)
		if err != nil {
			if isSessionExpired(err) && !retried {
				retried = true
				if refreshErr := c.sessions.RefreshSession(); refreshErr != nil {
					return response, fmt.Errorf("erro ao renovar sessão expirada: %w", refreshErr)
				}
				page--
				continue
			}
			return response, err
		}

		response = append(response, result.Orders...)

		if !result.HasMore {
			break
		}
	}

	return response, nil
}

func (c *SellerHubClient) getOrdersPage(ctx context.Context, params OrdersConsultationParams, page int) (*ordersPage, error) {
	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.config.SellerHub.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/orders")

	// Adicionar parâmetros de consulta.
	query := endpoint.Query()
	query.Set("start_date", params.StartDate)
	query.Set("end_date", params.EndDate)
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(c.config.SellerHub.PageSize))
	endpoint.RawQuery = query.Encode()

	// Criar a requisição HTTP.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	// Adicionar cabeçalhos necessários.
	req.Header.Set("Authorization", "Bearer "+c.config.SellerHub.SessionToken)
	req.Header.Set("Accept", "application/json")

	// Executar a requisição.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	// Verificar o código de status da resposta.
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, errSessionExpired
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	// Decodificar a resposta JSON.
	result := &ordersPage{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return result, nil
}

var errSessionExpired = fmt.Errorf("sessão do SellerHub expirada")

func isSessionExpired(err error) bool {
	return err == errSessionExpired
}
