package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/chaivision/chai-vision-api/infrastructure/database/postgres"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/lib/pq"
)

const uploadAuditsTable = "upload_audits ua"

type UploadAuditRepository interface {
	Save(audit *domain.UploadAudit) error
	List(limit int) ([]*domain.UploadAudit, error)
}

type uploadAuditRepository struct {
	conn *postgres.Connection
}

func NewUploadAuditRepository(conn *postgres.Connection) UploadAuditRepository {
	return &uploadAuditRepository{
		conn: conn,
	}
}

func (r *uploadAuditRepository) Save(audit *domain.UploadAudit) error {
	var errorsJSON []byte
	var err error

	if len(audit.Errors) > 0 {
		errorsJSON, err = json.Marshal(audit.Errors)
		if err != nil {
			return fmt.Errorf("erro ao serializar erros de validação para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("upload_audits").
		Columns(
			"id",
			"origin",
			"filename",
			"rows_received",
			"rows_accepted",
			"rows_rejected",
			"errors",
		).
		Values(
			audit.ID,
			audit.Origin,
			audit.Filename,
			audit.RowsReceived,
			audit.RowsAccepted,
			audit.RowsRejected,
			errorsJSON,
		).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *uploadAuditRepository) List(limit int) ([]*domain.UploadAudit, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := squirrel.
		Select(
			"ua.id",
			"ua.origin",
			"ua.filename",
			"ua.rows_received",
			"ua.rows_accepted",
			"ua.rows_rejected",
			"ua.errors",
			"ua.created_at",
		).
		From(uploadAuditsTable).
		OrderBy("ua.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.UploadAudit{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	audits := make([]*domain.UploadAudit, 0)
	for rows.Next() {
		audit, err := r.scanUploadAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear auditoria de upload: %w", err)
		}
		audits = append(audits, audit)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return audits, nil
}

func (r *uploadAuditRepository) scanUploadAudit(rows *sql.Rows) (*domain.UploadAudit, error) {
	audit := &domain.UploadAudit{}
	var errorsJSON []byte

	err := rows.Scan(
		&audit.ID,
		&audit.Origin,
		&audit.Filename,
		&audit.RowsReceived,
		&audit.RowsAccepted,
		&audit.RowsRejected,
		&errorsJSON,
		&audit.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(errorsJSON) > 0 {
		if err := json.Unmarshal(errorsJSON, &audit.Errors); err != nil {
			return nil, fmt.Errorf("erro ao deserializar erros de validação: %w", err)
		}
	}

	return audit, nil
}
