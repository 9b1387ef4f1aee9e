// Package ingesting recebe linhas cruas de qualquer provedor, normaliza,
// persiste e audita o lote.
package ingesting

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/chaivision/chai-vision-api/infrastructure/cache"
	"github.com/chaivision/chai-vision-api/infrastructure/repository"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/internal/usecases/normalizing"
	"github.com/chaivision/chai-vision-api/pkg/utils"
)

// A auditoria persiste só as primeiras mensagens de erro; a resposta do
// upload devolve todas.
const maxAuditErrors = 100

type Ingestor interface {
	IngestFrom(source domain.RecordSource, origin string, filename string) (*Result, error)
}

// Result junta a auditoria persistida com os erros linha a linha do lote,
// que a resposta do upload devolve por inteiro.
type Result struct {
	Audit        *domain.UploadAudit        `json:"audit"`
	RecordErrors []*normalizing.RecordError `json:"record_errors,omitempty"`
}

type Service struct {
	registryRepository repository.RegistryRepository
	salesRepository    repository.SalesRecordRepository
	auditRepository    repository.UploadAuditRepository
	normalizer         normalizing.Normalizer
	summaryCache       cache.SummaryCache
}

func NewService(
	registryRepo repository.RegistryRepository,
	salesRepo repository.SalesRecordRepository,
	auditRepo repository.UploadAuditRepository,
	normalizer normalizing.Normalizer,
	summaryCache cache.SummaryCache,
) Ingestor {
	return &Service{
		registryRepository: registryRepo,
		salesRepository:    salesRepo,
		auditRepository:    auditRepo,
		normalizer:         normalizer,
		summaryCache:       summaryCache,
	}
}

// IngestFrom processa um lote completo: linhas inválidas são rejeitadas
// individualmente e nunca derrubam o lote. Duplicatas são preservadas —
// relançamentos legítimos do mesmo dia são indistinguíveis de redigitação.
func (s *Service) IngestFrom(source domain.RecordSource, origin string, filename string) (*Result, error) {
	rows, err := source.LoadSalesData()
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar os dados de venda: %w", err)
	}

	registry, err := s.registryRepository.GetRegistry()
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar o cadastro de canais e marcas: %w", err)
	}

	records, recordErrors := s.normalizer.NormalizeBatch(rows, *registry)

	for i := range records {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar identificador de registro: %w", err)
		}
		records[i].ID = id
		records[i].Origin = origin
	}

	if err := s.salesRepository.InsertBatch(records); err != nil {
		return nil, fmt.Errorf("erro ao persistir os registros de venda: %w", err)
	}

	auditID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar identificador de auditoria: %w", err)
	}

	audit := &domain.UploadAudit{
		ID:           auditID,
		Origin:       origin,
		Filename:     filename,
		RowsReceived: len(rows),
		RowsAccepted: len(records),
		RowsRejected: len(recordErrors),
	}
	for i, recordError := range recordErrors {
		if i == maxAuditErrors {
			audit.Errors = append(audit.Errors, fmt.Sprintf("... e mais %d erros", len(recordErrors)-maxAuditErrors))
			break
		}
		audit.Errors = append(audit.Errors, recordError.Error())
	}

	if err := s.auditRepository.Save(audit); err != nil {
		// A auditoria não pode derrubar uma ingestão que já persistiu os dados
		logrus.Warnf("Erro ao salvar auditoria do lote %s: %v", auditID, err)
	}

	if len(records) > 0 {
		if err := s.summaryCache.Invalidate(context.Background()); err != nil {
			logrus.Warnf("Erro ao invalidar cache de resumos após ingestão: %v", err)
		}
	}

	logrus.Infof("Lote %s ingerido: origem=%s recebidas=%d aceitas=%d rejeitadas=%d",
		auditID, origin, audit.RowsReceived, audit.RowsAccepted, audit.RowsRejected)

	return &Result{
		Audit:        audit,
		RecordErrors: recordErrors,
	}, nil
}

type rowsSource struct {
	rows []domain.RawSalesRecord
}

func (s rowsSource) LoadSalesData() ([]domain.RawSalesRecord, error) {
	return s.rows, nil
}

// SourceFromRows embrulha linhas já materializadas (feed do SellerHub,
// corpo JSON) como um provedor de ingestão.
func SourceFromRows(rows []domain.RawSalesRecord) domain.RecordSource {
	return rowsSource{rows: rows}
}
