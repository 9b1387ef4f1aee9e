package ingesting

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chaivision/chai-vision-api/internal/domain"
)

type demoSource struct {
	seed     int64
	year     int
	registry domain.Registry
}

// NewDemoSource gera um ano de vendas sintéticas para ambientes de
// demonstração. A mesma seed produz sempre o mesmo conjunto de linhas.
func NewDemoSource(seed int64, year int, registry domain.Registry) domain.RecordSource {
	return demoSource{
		seed:     seed,
		year:     year,
		registry: registry,
	}
}

func (s demoSource) LoadSalesData() ([]domain.RawSalesRecord, error) {
	if len(s.registry.Brands) == 0 || len(s.registry.Channels) == 0 {
		return nil, fmt.Errorf("cadastro sem marcas ou canais; impossível gerar dados de demonstração")
	}

	rng := rand.New(rand.NewSource(s.seed))
	rows := make([]domain.RawSalesRecord, 0)

	for month := time.January; month <= time.December; month++ {
		daysInMonth := time.Date(s.year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()

		for _, brand := range s.registry.Brands {
			for _, channel := range s.registry.Channels {
				salesCount := 2 + rng.Intn(4)
				for i := 0; i < salesCount; i++ {
					day := 1 + rng.Intn(daysInMonth)
					date := fmt.Sprintf("%04d-%02d-%02d", s.year, int(month), day)
					revenue := fmt.Sprintf("%.2f", 50+rng.Float64()*950)
					units := 1 + rng.Intn(5)
					sku := fmt.Sprintf("%s-%03d", initials(brand), 1+rng.Intn(20))

					brandValue := brand
					channelValue := channel
					rows = append(rows, domain.RawSalesRecord{
						Date:    &date,
						Brand:   &brandValue,
						Channel: &channelValue,
						SKU:     &sku,
						Revenue: revenue,
						Units:   units,
					})
				}
			}
		}
	}

	return rows, nil
}

func initials(name string) string {
	if len(name) < 2 {
		return name
	}
	return name[:2]
}
