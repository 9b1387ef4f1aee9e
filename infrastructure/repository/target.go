package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/chaivision/chai-vision-api/infrastructure/database/postgres"
	"github.com/chaivision/chai-vision-api/internal/domain"
)

const salesTargetsTable = "sales_targets st"

type TargetRepository interface {
	GetByYear(year int) (*domain.TargetTable, error)
	ListByYear(year int) ([]domain.TargetEntry, error)
	ReplaceYear(year int, entries []domain.TargetEntry) error
}

type targetRepository struct {
	conn *postgres.Connection
}

func NewTargetRepository(conn *postgres.Connection) TargetRepository {
	return &targetRepository{
		conn: conn,
	}
}

// GetByYear monta a tabela de metas do ano. Ausência de meta não é meta
// zero: chaves sem linha no banco simplesmente não entram na tabela.
func (r *targetRepository) GetByYear(year int) (*domain.TargetTable, error) {
	entries, err := r.ListByYear(year)
	if err != nil {
		return nil, err
	}

	table := domain.NewTargetTable(year)
	for _, entry := range entries {
		table.Set(entry.PeriodKey, entry.Brand, entry.Channel, entry.Amount)
	}

	return table, nil
}

func (r *targetRepository) ListByYear(year int) ([]domain.TargetEntry, error) {
	query, args, err := squirrel.
		Select(
			"st.year",
			"st.period_key",
			"st.brand",
			"st.channel",
			"st.amount",
		).
		From(salesTargetsTable).
		Where(squirrel.Eq{"st.year": year}).
		OrderBy("st.period_key ASC", "st.brand ASC", "st.channel ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []domain.TargetEntry{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.TargetEntry, 0)
	for rows.Next() {
		var entry domain.TargetEntry
		err := rows.Scan(
			&entry.Year,
			&entry.PeriodKey,
			&entry.Brand,
			&entry.Channel,
			&entry.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear meta: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

// ReplaceYear troca todas as metas do ano de uma vez, dentro de uma
// transação: o dashboard nunca enxerga um ano pela metade.
func (r *targetRepository) ReplaceYear(year int, entries []domain.TargetEntry) error {
	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		deleteQuery, deleteArgs, err := squirrel.
			Delete("sales_targets").
			Where(squirrel.Eq{"year": year}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de remoção: %w", err)
		}

		if _, err = tx.Exec(deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("erro ao remover metas do ano %d: %w", year, err)
		}

		if len(entries) == 0 {
			return nil
		}

		insert := squirrel.StatementBuilder.
			Insert("sales_targets").
			Columns(
				"year",
				"period_key",
				"brand",
				"channel",
				"amount",
			).
			PlaceholderFormat(squirrel.Dollar)

		for _, entry := range entries {
			insert = insert.Values(
				year,
				entry.PeriodKey,
				entry.Brand,
				entry.Channel,
				entry.Amount,
			)
		}

		insertQuery, insertArgs, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de inserção: %w", err)
		}

		if _, err = tx.Exec(insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("erro ao inserir metas do ano %d: %w", year, err)
		}

		return nil
	})
}
