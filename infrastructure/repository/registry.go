package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/chaivision/chai-vision-api/infrastructure/database/postgres"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/lib/pq"
)

type RegistryRepository interface {
	GetRegistry() (*domain.Registry, error)
	AddChannel(name string) error
	AddBrand(name string) error
}

type registryRepository struct {
	conn *postgres.Connection
}

func NewRegistryRepository(conn *postgres.Connection) RegistryRepository {
	return &registryRepository{
		conn: conn,
	}
}

// GetRegistry carrega o cadastro de canais e marcas conhecidos, na ordem
// em que foram registrados.
func (r *registryRepository) GetRegistry() (*domain.Registry, error) {
	channels, err := r.listNames("channels")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar canais: %w", err)
	}

	brands, err := r.listNames("brands")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar marcas: %w", err)
	}

	return &domain.Registry{
		Channels: channels,
		Brands:   brands,
	}, nil
}

func (r *registryRepository) AddChannel(name string) error {
	return r.insertName("channels", name)
}

func (r *registryRepository) AddBrand(name string) error {
	return r.insertName("brands", name)
}

func (r *registryRepository) listNames(table string) ([]string, error) {
	query, args, err := squirrel.
		Select("name").
		From(table).
		OrderBy("created_at ASC", "name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []string{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("erro ao escanear nome: %w", err)
		}
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return names, nil
}

func (r *registryRepository) insertName(table, name string) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(table).
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
