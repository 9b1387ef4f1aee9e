package sellerhub

import (
	"time"

	sellerhubdomain "github.com/chaivision/chai-vision-api/infrastructure/integrator/sellerhub/domain"
	"github.com/chaivision/chai-vision-api/infrastructure/integrator/sellerhub/sellerhubclient"
	"github.com/chaivision/chai-vision-api/internal/config"
	"github.com/chaivision/chai-vision-api/internal/domain"
)

type SellerHubIntegrator interface {
	FetchSalesData(params sellerhubdomain.GetOrdersParams) ([]domain.RawSalesRecord, error)
	CheckConnection() (bool, error)
}

type SellerHubService struct {
	cfg    *config.Config
	Client sellerhubclient.Client
}

func New(cfg *config.Config, client sellerhubclient.Client) SellerHubIntegrator {
	return &SellerHubService{
		cfg:    cfg,
		Client: client,
	}
}

// FetchSalesData busca os pedidos faturáveis do período e devolve no
// formato cru do feed, que o pipeline de ingestão sabe normalizar.
func (s *SellerHubService) FetchSalesData(params sellerhubdomain.GetOrdersParams) ([]domain.RawSalesRecord, error) {
	paramsClient := sellerhubclient.OrdersConsultationParams{
		StartDate: params.StartDate.Format(time.DateOnly),
		EndDate:   params.EndDate.Format(time.DateOnly),
	}

	orders, err := s.Client.GetOrders(paramsClient)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.RawSalesRecord, 0, len(orders))
	for _, order := range orders {
		if !order.IsBillable() {
			continue
		}
		rows = append(rows, rawRecordFromOrder(order))
	}

	return rows, nil
}

func (s *SellerHubService) CheckConnection() (bool, error) {
	if err := s.Client.EnsureValidSession(); err != nil {
		return false, err
	}
	return true, nil
}

// rawRecordFromOrder preserva a grafia dos campos do feed (brand_name,
// channel_name, sku_code, amount, quantity); quem resolve os sinônimos é o
// normalizador.
func rawRecordFromOrder(order sellerhubdomain.FeedOrder) domain.RawSalesRecord {
	saleDate := order.SaleDate
	brandName := order.BrandName
	channelName := order.ChannelName
	skuCode := order.SKUCode

	return domain.RawSalesRecord{
		SaleDate:  &saleDate,
		BrandName: &brandName,
		ChanName:  &channelName,
		SKUCode:   &skuCode,
		Amount:    order.Amount,
		Quantity:  order.Quantity,
	}
}
