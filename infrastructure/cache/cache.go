// Package cache guarda resultados de consultas caras do dashboard.
package cache

import (
	"context"
	"time"

	"github.com/chaivision/chai-vision-api/internal/domain"
)

type SummaryCache interface {
	Get(ctx context.Context, key string) (*domain.InsightSummary, bool, error)
	Set(ctx context.Context, key string, value *domain.InsightSummary, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// NoopSummaryCache é usado quando o Redis está desabilitado: toda leitura
// é um miss e toda escrita é descartada.
type NoopSummaryCache struct{}

func (NoopSummaryCache) Get(_ context.Context, _ string) (*domain.InsightSummary, bool, error) {
	return nil, false, nil
}

func (NoopSummaryCache) Set(_ context.Context, _ string, _ *domain.InsightSummary, _ time.Duration) error {
	return nil
}

func (NoopSummaryCache) Invalidate(_ context.Context) error {
	return nil
}
