package sellerhubdomain

import "time"

type OrderStatus string

const (
	ShippedStatus   OrderStatus = "shipped"
	DeliveredStatus OrderStatus = "delivered"
	CancelledStatus OrderStatus = "cancelled"
	ReturnedStatus  OrderStatus = "returned"
)

// Pedidos nestes status contam como venda; cancelados e devolvidos ficam
// de fora do dashboard.
var BillableStatuses = []OrderStatus{
	ShippedStatus,
	DeliveredStatus,
}

// FeedOrder é um pedido do feed de marketplaces do SellerHub, no formato
// em que a API dele devolve.
type FeedOrder struct {
	ID          string      `json:"id,omitempty"`
	SaleDate    string      `json:"sale_date,omitempty"`
	BrandName   string      `json:"brand_name,omitempty"`
	ChannelName string      `json:"channel_name,omitempty"`
	SKUCode     string      `json:"sku_code,omitempty"`
	Amount      float64     `json:"amount,omitempty"`
	Quantity    int         `json:"quantity,omitempty"`
	Currency    string      `json:"currency,omitempty"`
	Status      OrderStatus `json:"status,omitempty"`
	Marketplace string      `json:"marketplace,omitempty"`
}

// IsBillable informa se o pedido conta como venda.
func (o FeedOrder) IsBillable() bool {
	for _, status := range BillableStatuses {
		if o.Status == status {
			return true
		}
	}
	return false
}

type GetOrdersParams struct {
	StartDate time.Time
	EndDate   time.Time
}
