package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/chaivision/chai-vision-api/infrastructure/database/postgres"
	"github.com/chaivision/chai-vision-api/internal/domain"
)

const (
	salesRankingTable = "sales_rankings rk"
)

type RankingRepository interface {
	GetByName(name, by, periodLabel string) (*domain.RankingItem, error)
	GetRanking(by, periodLabel string) ([]domain.RankingItem, time.Time, error)
	SaveOrUpdateRanking(rankings []*domain.RankingItem) error
}

type rankingRepository struct {
	conn *postgres.Connection
}

func NewRankingRepository(conn *postgres.Connection) RankingRepository {
	return &rankingRepository{
		conn: conn,
	}
}

func (r *rankingRepository) GetRanking(by, periodLabel string) ([]domain.RankingItem, time.Time, error) {
	queryBuilder := squirrel.
		Select(
			"rk.id",
			"rk.name",
			"rk.dimension",
			"rk.period_label",
			"rk.revenue",
			"rk.units",
			"rk.share_percent",
			"rk.position",
			"rk.position_change",
			"rk.previous_position",
			"rk.created_at",
			"rk.updated_at",
		).
		From(salesRankingTable).
		Where(squirrel.Eq{"rk.dimension": by, "rk.period_label": periodLabel}).
		OrderBy("rk.position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []domain.RankingItem{}, time.Now(), nil
		}
		return nil, time.Time{}, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	rankings := make([]domain.RankingItem, 0)
	var lastUpdate time.Time

	for rows.Next() {
		item, err := r.scanRankingItem(rows)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("erro ao escanear item do ranking: %w", err)
		}

		rankings = append(rankings, *item)

		// Manter o último update mais recente
		if item.UpdatedAt.After(lastUpdate) {
			lastUpdate = item.UpdatedAt
		}
	}

	if err = rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if lastUpdate.IsZero() {
		lastUpdate = time.Now()
	}

	return rankings, lastUpdate, nil
}

func (r *rankingRepository) GetByName(name, by, periodLabel string) (*domain.RankingItem, error) {
	query, args, err := squirrel.
		Select("rk.id, rk.name, rk.dimension, rk.period_label, rk.revenue, rk.units, rk.share_percent, rk.position, rk.position_change, rk.previous_position, rk.created_at, rk.updated_at").
		From(salesRankingTable).
		Where(squirrel.Eq{"rk.name": name, "rk.dimension": by, "rk.period_label": periodLabel}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	item, err := r.scanRankingItemRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear ranking: %w", err)
	}
	return item, nil
}

func (r *rankingRepository) SaveOrUpdateRanking(rankings []*domain.RankingItem) error {
	if len(rankings) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("sales_rankings").
		Columns(
			"name",
			"dimension",
			"period_label",
			"revenue",
			"units",
			"share_percent",
			"position",
			"position_change",
			"previous_position",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, ranking := range rankings {
		query = query.Values(
			ranking.Name,
			ranking.By,
			ranking.PeriodLabel,
			ranking.Revenue,
			ranking.Units,
			ranking.SharePercent,
			ranking.Position,
			ranking.PositionChange,
			ranking.PreviousPosition,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (name, dimension, period_label) DO UPDATE SET
			revenue = EXCLUDED.revenue,
			units = EXCLUDED.units,
			share_percent = EXCLUDED.share_percent,
			position = EXCLUDED.position,
			position_change = EXCLUDED.position_change,
			previous_position = EXCLUDED.previous_position,
			updated_at = CURRENT_TIMESTAMP
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func (r *rankingRepository) scanRankingItem(rows *sql.Rows) (*domain.RankingItem, error) {
	item := &domain.RankingItem{}

	err := rows.Scan(
		&item.ID,
		&item.Name,
		&item.By,
		&item.PeriodLabel,
		&item.Revenue,
		&item.Units,
		&item.SharePercent,
		&item.Position,
		&item.PositionChange,
		&item.PreviousPosition,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *rankingRepository) scanRankingItemRow(row *sql.Row) (*domain.RankingItem, error) {
	item := &domain.RankingItem{}

	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.By,
		&item.PeriodLabel,
		&item.Revenue,
		&item.Units,
		&item.SharePercent,
		&item.Position,
		&item.PositionChange,
		&item.PreviousPosition,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}
