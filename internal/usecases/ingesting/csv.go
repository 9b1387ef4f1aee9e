package ingesting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/chaivision/chai-vision-api/internal/domain"
)

// Colunas reconhecidas no cabeçalho do CSV. Provedores variam a grafia,
// então cada campo aceita os mesmos sinônimos do normalizador.
var csvColumnAliases = map[string]string{
	"date":         "date",
	"sale_date":    "sale_date",
	"brand":        "brand",
	"brand_name":   "brand_name",
	"channel":      "channel",
	"channel_name": "channel_name",
	"sku":          "sku",
	"sku_code":     "sku_code",
	"revenue":      "revenue",
	"amount":       "amount",
	"units":        "units",
	"quantity":     "quantity",
}

type csvSource struct {
	reader io.Reader
}

// NewCSVSource cria um provedor de ingestão a partir de um CSV com
// cabeçalho. Colunas desconhecidas são ignoradas.
func NewCSVSource(reader io.Reader) domain.RecordSource {
	return csvSource{reader: reader}
}

func (s csvSource) LoadSalesData() ([]domain.RawSalesRecord, error) {
	csvReader := csv.NewReader(s.reader)
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("arquivo CSV vazio")
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o cabeçalho do CSV: %w", err)
	}

	fieldByColumn := make(map[int]string, len(header))
	for i, column := range header {
		name := strings.ToLower(strings.TrimSpace(column))
		if field, ok := csvColumnAliases[name]; ok {
			fieldByColumn[i] = field
		}
	}
	if len(fieldByColumn) == 0 {
		return nil, fmt.Errorf("cabeçalho do CSV não tem nenhuma coluna reconhecida")
	}

	rows := make([]domain.RawSalesRecord, 0)
	for {
		line, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao ler linha do CSV: %w", err)
		}

		row := domain.RawSalesRecord{}
		for i, value := range line {
			field, ok := fieldByColumn[i]
			if !ok {
				continue
			}
			setRawField(&row, field, strings.TrimSpace(value))
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func setRawField(row *domain.RawSalesRecord, field, value string) {
	if value == "" {
		return
	}
	v := value
	switch field {
	case "date":
		row.Date = &v
	case "sale_date":
		row.SaleDate = &v
	case "brand":
		row.Brand = &v
	case "brand_name":
		row.BrandName = &v
	case "channel":
		row.Channel = &v
	case "channel_name":
		row.ChanName = &v
	case "sku":
		row.SKU = &v
	case "sku_code":
		row.SKUCode = &v
	case "revenue":
		row.Revenue = v
	case "amount":
		row.Amount = v
	case "units":
		row.Units = v
	case "quantity":
		row.Quantity = v
	}
}
