package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origem do registro de venda. Toda linha persistida carrega a origem
// para auditoria e para o filtro de reprocessamento.
const (
	OriginUpload = "upload"
	OriginFeed   = "feed"
	OriginDemo   = "demo"
)

// SalesRecord é uma linha de venda já normalizada. Imutável depois de
// persistida: uploads duplicados são preservados e somados na agregação.
type SalesRecord struct {
	ID      string          `json:"id"`
	Date    time.Time       `json:"date"`
	Brand   string          `json:"brand"`
	Channel string          `json:"channel"`
	SKU     string          `json:"sku,omitempty"`
	Revenue decimal.Decimal `json:"revenue"`
	Units   int             `json:"units"`
	Origin  string          `json:"origin"`
}

// RawSalesRecord é a linha crua vinda de um provedor (upload, feed ou
// gerador de demonstração), antes da normalização. Os provedores variam a
// grafia dos campos, então tudo aqui é opcional e sem tipo forte.
type RawSalesRecord struct {
	Date      *string `json:"date" mapstructure:"date"`
	SaleDate  *string `json:"sale_date" mapstructure:"sale_date"`
	Brand     *string `json:"brand" mapstructure:"brand"`
	BrandName *string `json:"brand_name" mapstructure:"brand_name"`
	Channel   *string `json:"channel" mapstructure:"channel"`
	ChanName  *string `json:"channel_name" mapstructure:"channel_name"`
	SKU       *string `json:"sku" mapstructure:"sku"`
	SKUCode   *string `json:"sku_code" mapstructure:"sku_code"`
	Revenue   any     `json:"revenue" mapstructure:"revenue"`
	Amount    any     `json:"amount" mapstructure:"amount"`
	Units     any     `json:"units" mapstructure:"units"`
	Quantity  any     `json:"quantity" mapstructure:"quantity"`
}

// RecordSource fornece linhas cruas de venda. Implementado pelo parser de
// upload, pelo integrador SellerHub e pelo gerador de demonstração — o
// serviço de ingestão trata os três da mesma forma.
type RecordSource interface {
	LoadSalesData() ([]RawSalesRecord, error)
}
