package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetRepository_GetByYear(t *testing.T) {
	t.Run("Deve montar a tabela de metas a partir das linhas", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewTargetRepository(conn)

		rows := sqlmock.NewRows([]string{"year", "period_key", "brand", "channel", "amount"}).
			AddRow(2025, "annual", "LifePro", "Amazon", "12000.00").
			AddRow(2025, "q1", "LifePro", "Amazon", "3000.00").
			AddRow(2025, "q1", "LifePro", "Walmart", "1000.00")

		mock.ExpectQuery(regexp.QuoteMeta("FROM sales_targets st WHERE st.year = $1")).
			WithArgs(2025).
			WillReturnRows(rows)

		table, err := repo.GetByYear(2025)

		require.NoError(t, err)
		require.NotNil(t, table)
		assert.Equal(t, 2025, table.Year)

		amount, ok := table.Lookup("q1", "LifePro", "Amazon")
		assert.True(t, ok)
		assert.True(t, amount.Equal(decimal.RequireFromString("3000.00")))

		sum, ok := table.SumForBrand("q1", "LifePro")
		assert.True(t, ok)
		assert.True(t, sum.Equal(decimal.RequireFromString("4000.00")))

		// Ausência de meta não vira zero
		_, ok = table.Lookup("q2", "LifePro", "Amazon")
		assert.False(t, ok)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deve retornar tabela vazia quando o ano não tem metas", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewTargetRepository(conn)

		mock.ExpectQuery(regexp.QuoteMeta("FROM sales_targets st")).
			WithArgs(2030).
			WillReturnRows(sqlmock.NewRows([]string{"year", "period_key", "brand", "channel", "amount"}))

		table, err := repo.GetByYear(2030)

		require.NoError(t, err)
		require.NotNil(t, table)
		assert.Empty(t, table.Targets)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTargetRepository_ReplaceYear(t *testing.T) {
	t.Run("Deve trocar as metas do ano dentro de uma transação", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewTargetRepository(conn)

		entries := []domain.TargetEntry{
			{PeriodKey: "annual", Brand: "LifePro", Channel: "Amazon", Amount: decimal.RequireFromString("12000.00")},
			{PeriodKey: "q1", Brand: "LifePro", Channel: "Amazon", Amount: decimal.RequireFromString("3000.00")},
		}

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sales_targets WHERE year = $1")).
			WithArgs(2025).
			WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sales_targets")).
			WithArgs(
				2025, "annual", "LifePro", "Amazon", entries[0].Amount,
				2025, "q1", "LifePro", "Amazon", entries[1].Amount,
			).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := repo.ReplaceYear(2025, entries)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deve apenas remover quando a lista de metas é vazia", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewTargetRepository(conn)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sales_targets")).
			WithArgs(2025).
			WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectCommit()

		err := repo.ReplaceYear(2025, nil)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deve desfazer a transação quando a inserção falha", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewTargetRepository(conn)

		entries := []domain.TargetEntry{
			{PeriodKey: "annual", Brand: "LifePro", Channel: "Amazon", Amount: decimal.RequireFromString("12000.00")},
		}

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sales_targets")).
			WithArgs(2025).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sales_targets")).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.ReplaceYear(2025, entries)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
