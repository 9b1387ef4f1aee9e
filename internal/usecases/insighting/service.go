// Package insighting orquestra o resumo de desempenho do dashboard:
// resolve o período, agrega as vendas, cruza com metas e calcula o
// crescimento contra o período anterior.
package insighting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chaivision/chai-vision-api/infrastructure/cache"
	"github.com/chaivision/chai-vision-api/infrastructure/repository"
	"github.com/chaivision/chai-vision-api/internal/config"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/internal/usecases/aggregating"
	"github.com/chaivision/chai-vision-api/internal/usecases/comparing"
)

type Service struct {
	salesRepository  repository.SalesRecordRepository
	targetRepository repository.TargetRepository
	aggregator       aggregating.Aggregator
	comparator       comparing.Comparator
	summaryCache     cache.SummaryCache
	cacheTTL         time.Duration
}

func NewService(
	cfg *config.Config,
	salesRepo repository.SalesRecordRepository,
	targetRepo repository.TargetRepository,
	aggregator aggregating.Aggregator,
	comparator comparing.Comparator,
	summaryCache cache.SummaryCache,
) Insighter {
	return &Service{
		salesRepository:  salesRepo,
		targetRepository: targetRepo,
		aggregator:       aggregator,
		comparator:       comparator,
		summaryCache:     summaryCache,
		cacheTTL:         time.Duration(cfg.Insights.CacheTTLMinutes) * time.Minute,
	}
}

func (s *Service) GetSummary(filter domain.SummaryFilter) (*domain.InsightSummary, error) {
	if filter.Compare == "" {
		filter.Compare = domain.CompareYearOverYear
	}
	if len(filter.GroupBy) == 0 {
		filter.GroupBy = []domain.GroupField{domain.GroupByBrand}
	}

	period, err := domain.ResolvePeriod(filter.Kind, filter.Year, filter.Quarter, filter.Month)
	if err != nil {
		return nil, err
	}

	prior, err := domain.PriorPeriod(period, filter.Compare)
	if err != nil {
		return nil, err
	}

	cacheKey := filter.CacheKey()
	if cached, found, err := s.summaryCache.Get(context.Background(), cacheKey); err != nil {
		logrus.WithError(err).Warn("Erro ao consultar cache de resumos")
	} else if found {
		logrus.WithField("key", cacheKey).Debug("Resumo servido do cache")
		return cached, nil
	}

	// As duas janelas são independentes; buscar em paralelo
	var (
		currentRecords []domain.SalesRecord
		priorRecords   []domain.SalesRecord
		currentErr     error
		priorErr       error
	)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		currentRecords, currentErr = s.salesRepository.ListBetween(period.Start, period.End)
	}()

	go func() {
		defer wg.Done()
		priorRecords, priorErr = s.salesRepository.ListBetween(prior.Start, prior.End)
	}()

	wg.Wait()

	if currentErr != nil {
		return nil, fmt.Errorf("erro ao buscar vendas do período: %w", currentErr)
	}
	if priorErr != nil {
		return nil, fmt.Errorf("erro ao buscar vendas do período anterior: %w", priorErr)
	}

	currentRecords = filterRecords(currentRecords, filter.Brand, filter.Channel)
	priorRecords = filterRecords(priorRecords, filter.Brand, filter.Channel)

	currentAgg, err := s.aggregator.Aggregate(currentRecords, period, filter.GroupBy)
	if err != nil {
		return nil, err
	}

	priorAgg, err := s.aggregator.Aggregate(priorRecords, prior, filter.GroupBy)
	if err != nil {
		return nil, err
	}

	targetTable, err := s.targetRepository.GetByYear(period.Year)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar metas do ano %d: %w", period.Year, err)
	}

	summary := &domain.InsightSummary{
		Period:    period,
		Prior:     prior,
		Aggregate: currentAgg,
		Targets:   s.comparator.CompareToTargets(currentAgg, *targetTable),
		Growth:    s.comparator.Growth(currentAgg, priorAgg),
	}

	if err := s.summaryCache.Set(context.Background(), cacheKey, summary, s.cacheTTL); err != nil {
		logrus.WithError(err).Warn("Erro ao gravar resumo no cache")
	}

	return summary, nil
}

// GetAvailablePeriods lista os meses com registros na base, no formato
// mm-yyyy, com os anos e meses únicos para os seletores do dashboard.
func (s *Service) GetAvailablePeriods() (*domain.AvailablePeriods, error) {
	months, err := s.salesRepository.DistinctMonths()
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar períodos disponíveis: %w", err)
	}

	periodMap := make(map[string]bool)
	yearMap := make(map[string]bool)
	monthMap := make(map[string]bool)

	for _, m := range months {
		period := m.Format("01-2006")
		periodMap[period] = true
		monthMap[period[:2]] = true
		yearMap[period[3:]] = true
	}

	periods := make([]string, 0, len(periodMap))
	for period := range periodMap {
		periods = append(periods, period)
	}

	years := make([]string, 0, len(yearMap))
	for year := range yearMap {
		years = append(years, year)
	}

	uniqueMonths := make([]string, 0, len(monthMap))
	for month := range monthMap {
		uniqueMonths = append(uniqueMonths, month)
	}

	sort.Strings(periods)
	sort.Strings(years)
	sort.Strings(uniqueMonths)

	return &domain.AvailablePeriods{
		Periods: periods,
		Years:   years,
		Months:  uniqueMonths,
	}, nil
}

// filterRecords aplica os filtros opcionais de marca e canal. As
// pseudo-seleções "All Brands" e "All Channels" não filtram nada.
func filterRecords(records []domain.SalesRecord, brand, channel string) []domain.SalesRecord {
	if domain.IsAllBrands(brand) && domain.IsAllChannels(channel) {
		return records
	}

	filtered := make([]domain.SalesRecord, 0, len(records))
	for _, record := range records {
		if !domain.IsAllBrands(brand) && !strings.EqualFold(record.Brand, brand) {
			continue
		}
		if !domain.IsAllChannels(channel) && !strings.EqualFold(record.Channel, channel) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}
