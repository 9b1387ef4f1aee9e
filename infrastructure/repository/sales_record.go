// Package repository contém as implementações dos repositórios para acesso aos dados
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
	salesRecordsTable = "sales_records sr"

	// lib/pq limita o número de parâmetros por statement (65535); inserções
	// grandes vão em blocos.
	insertChunkSize = 500
)

type SalesRecordRepository interface {
	InsertBatch(records []domain.SalesRecord) error
	ListBetween(start, end time.Time) ([]domain.SalesRecord, error)
	SumByDimension(by string, start, end time.Time) ([]*domain.RankingItem, error)
	DistinctMonths() ([]time.Time, error)
	CountAll() (int, error)
}

type salesRecordRepository struct {
	conn *postgres.Connection
}

func NewSalesRecordRepository(conn *postgres.Connection) SalesRecordRepository {
	return &salesRecordRepository{
		conn: conn,
	}
}

func (r *salesRecordRepository) InsertBatch(records []domain.SalesRecord) error {
	for offset := 0; offset < len(records); offset += insertChunkSize {
		end := offset + insertChunkSize
		if end > len(records) {
			end = len(records)
		}
		if err := r.insertChunk(records[offset:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *salesRecordRepository) insertChunk(records []domain.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("sales_records").
		Columns(
			"id",
			"sale_date",
			"brand",
			"channel",
			"sku",
			"revenue",
			"units",
			"origin",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, record := range records {
		query = query.Values(
			record.ID,
			record.Date,
			record.Brand,
			record.Channel,
			record.SKU,
			record.Revenue,
			record.Units,
			record.Origin,
		)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err = r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao inserir registros de venda: %w", err)
	}

	return nil
}

func (r *salesRecordRepository) ListBetween(start, end time.Time) ([]domain.SalesRecord, error) {
	query, args, err := squirrel.
		Select(
			"sr.id",
			"sr.sale_date",
			"sr.brand",
			"sr.channel",
			"sr.sku",
			"sr.revenue",
			"sr.units",
			"sr.origin",
		).
		From(salesRecordsTable).
		Where(squirrel.GtOrEq{"sr.sale_date": start}).
		Where(squirrel.LtOrEq{"sr.sale_date": end}).
		OrderBy("sr.sale_date ASC", "sr.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []domain.SalesRecord{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.SalesRecord, 0)
	for rows.Next() {
		record, err := r.scanSalesRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de venda: %w", err)
		}
		records = append(records, *record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

// SumByDimension soma receita e unidades direto no banco, agrupando por
// marca ou canal. Usado pelo ranking, que não precisa dos registros crus.
func (r *salesRecordRepository) SumByDimension(by string, start, end time.Time) ([]*domain.RankingItem, error) {
	var column string
	switch by {
	case domain.RankingByBrand:
		column = "sr.brand"
	case domain.RankingByChannel:
		column = "sr.channel"
	default:
		return nil, fmt.Errorf("dimensão de ranking desconhecida: %q", by)
	}

	query, args, err := squirrel.
		Select(
			column+" AS name",
			"SUM(sr.revenue) AS revenue",
			"COALESCE(SUM(sr.units), 0) AS units",
		).
		From(salesRecordsTable).
		Where(squirrel.GtOrEq{"sr.sale_date": start}).
		Where(squirrel.LtOrEq{"sr.sale_date": end}).
		GroupBy(column).
		OrderBy("revenue DESC", "name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.RankingItem{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.RankingItem, 0)
	for rows.Next() {
		item := &domain.RankingItem{By: by}
		if err := rows.Scan(&item.Name, &item.Revenue, &item.Units); err != nil {
			return nil, fmt.Errorf("erro ao escanear soma por dimensão: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}

// DistinctMonths lista os meses com dados, do mais recente para o mais
// antigo. Alimenta o seletor de período do dashboard.
func (r *salesRecordRepository) DistinctMonths() ([]time.Time, error) {
	query := `SELECT DISTINCT date_trunc('month', sale_date) AS month
		FROM sales_records
		ORDER BY month DESC`

	rows, err := r.conn.Query(query)
	if err != nil {
		if err == sql.ErrNoRows {
			return []time.Time{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	months := make([]time.Time, 0)
	for rows.Next() {
		var month time.Time
		if err := rows.Scan(&month); err != nil {
			return nil, fmt.Errorf("erro ao escanear mês: %w", err)
		}
		months = append(months, month)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return months, nil
}

func (r *salesRecordRepository) CountAll() (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(salesRecordsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar registros de venda: %w", err)
	}

	return count, nil
}

func (r *salesRecordRepository) scanSalesRecord(rows *sql.Rows) (*domain.SalesRecord, error) {
	record := &domain.SalesRecord{}

	err := rows.Scan(
		&record.ID,
		&record.Date,
		&record.Brand,
		&record.Channel,
		&record.SKU,
		&record.Revenue,
		&record.Units,
		&record.Origin,
	)
	if err != nil {
		return nil, err
	}

	return record, nil
}
