package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chaivision/chai-vision-api/infrastructure/database/postgres"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &postgres.Connection{DB: db}, mock
}

func TestSalesRecordRepository_InsertBatch(t *testing.T) {
	t.Run("Deve inserir os registros em um único statement", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewSalesRecordRepository(conn)

		records := []domain.SalesRecord{
			{
				ID:      "a1b2c3",
				Date:    time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
				Brand:   "LifePro",
				Channel: "Amazon",
				SKU:     "LP-100",
				Revenue: decimal.RequireFromString("100.00"),
				Units:   2,
				Origin:  domain.OriginUpload,
			},
			{
				ID:      "d4e5f6",
				Date:    time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
				Brand:   "LifePro",
				Channel: "Amazon",
				SKU:     "LP-200",
				Revenue: decimal.RequireFromString("50.00"),
				Units:   1,
				Origin:  domain.OriginUpload,
			},
		}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sales_records")).
			WithArgs(
				"a1b2c3", records[0].Date, "LifePro", "Amazon", "LP-100", records[0].Revenue, 2, domain.OriginUpload,
				"d4e5f6", records[1].Date, "LifePro", "Amazon", "LP-200", records[1].Revenue, 1, domain.OriginUpload,
			).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.InsertBatch(records)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deve aceitar lote vazio sem tocar no banco", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewSalesRecordRepository(conn)

		err := repo.InsertBatch(nil)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deve quebrar lotes grandes em blocos", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewSalesRecordRepository(conn)

		records := make([]domain.SalesRecord, insertChunkSize+1)
		for i := range records {
			records[i] = domain.SalesRecord{
				ID:      "id",
				Date:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				Brand:   "LifePro",
				Channel: "Amazon",
				Revenue: decimal.Zero,
				Origin:  domain.OriginFeed,
			}
		}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sales_records")).
			WillReturnResult(sqlmock.NewResult(0, int64(insertChunkSize)))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sales_records")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.InsertBatch(records)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSalesRecordRepository_ListBetween(t *testing.T) {
	t.Run("Deve listar os registros do intervalo", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewSalesRecordRepository(conn)

		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

		cols := []string{"id", "sale_date", "brand", "channel", "sku", "revenue", "units", "origin"}
		rows := sqlmock.NewRows(cols).
			AddRow("a1b2c3", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), "LifePro", "Amazon", "LP-100", "100.00", 2, "upload").
			AddRow("d4e5f6", time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), "LifePro", "Amazon", "LP-200", "50.00", 1, "upload")

		mock.ExpectQuery(regexp.QuoteMeta("FROM sales_records sr WHERE sr.sale_date >= $1 AND sr.sale_date <= $2")).
			WithArgs(start, end).
			WillReturnRows(rows)

		records, err := repo.ListBetween(start, end)

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "LifePro", records[0].Brand)
		assert.True(t, records[0].Revenue.Equal(decimal.RequireFromString("100.00")))
		assert.Equal(t, 1, records[1].Units)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deve retornar lista vazia quando não há registros", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewSalesRecordRepository(conn)

		start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

		cols := []string{"id", "sale_date", "brand", "channel", "sku", "revenue", "units", "origin"}
		mock.ExpectQuery(regexp.QuoteMeta("FROM sales_records sr")).
			WithArgs(start, end).
			WillReturnRows(sqlmock.NewRows(cols))

		records, err := repo.ListBetween(start, end)

		require.NoError(t, err)
		assert.Empty(t, records)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSalesRecordRepository_SumByDimension(t *testing.T) {
	t.Run("Deve somar receita e unidades por marca", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewSalesRecordRepository(conn)

		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"name", "revenue", "units"}).
			AddRow("LifePro", "1500.00", 30).
			AddRow("Zulay", "900.50", 12)

		mock.ExpectQuery(regexp.QuoteMeta("GROUP BY sr.brand")).
			WithArgs(start, end).
			WillReturnRows(rows)

		items, err := repo.SumByDimension(domain.RankingByBrand, start, end)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "LifePro", items[0].Name)
		assert.Equal(t, domain.RankingByBrand, items[0].By)
		assert.True(t, items[0].Revenue.Equal(decimal.RequireFromString("1500.00")))
		assert.Equal(t, 12, items[1].Units)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deve rejeitar dimensão desconhecida sem tocar no banco", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewSalesRecordRepository(conn)

		items, err := repo.SumByDimension("sku", time.Now(), time.Now())

		assert.Error(t, err)
		assert.Nil(t, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSalesRecordRepository_DistinctMonths(t *testing.T) {
	t.Run("Deve listar os meses com dados do mais recente ao mais antigo", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewSalesRecordRepository(conn)

		rows := sqlmock.NewRows([]string{"month"}).
			AddRow(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)).
			AddRow(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)).
			AddRow(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

		mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT date_trunc('month', sale_date)")).
			WillReturnRows(rows)

		months, err := repo.DistinctMonths()

		require.NoError(t, err)
		require.Len(t, months, 3)
		assert.Equal(t, time.March, months[0].Month())
		assert.Equal(t, time.January, months[2].Month())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSalesRecordRepository_CountAll(t *testing.T) {
	t.Run("Deve contar os registros", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewSalesRecordRepository(conn)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM sales_records sr")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

		count, err := repo.CountAll()

		require.NoError(t, err)
		assert.Equal(t, 42, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
