package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/chaivision/chai-vision-api/infrastructure/repository"
	"github.com/chaivision/chai-vision-api/internal/domain"
	"github.com/chaivision/chai-vision-api/internal/usecases/ingesting"
	"github.com/chaivision/chai-vision-api/pkg/apiErrors"
	"github.com/chaivision/chai-vision-api/pkg/utils"
)

// Limite do multipart em memória; o excedente vai para disco temporário.
const maxUploadMemory = 32 << 20

const defaultAuditListLimit = 20

// UploadSales recebe um CSV de vendas via multipart e devolve a auditoria
// do lote: linhas inválidas são rejeitadas uma a uma e relatadas na
// resposta, nunca derrubam o restante do arquivo.
func UploadSales(service ingesting.Ingestor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UploadSales")

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidUploadFile, "Requisição multipart inválida", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidUploadFile, "Arquivo não encontrado no campo 'file'", nil)
			return
		}
		defer file.Close()

		result, err := service.IngestFrom(ingesting.NewCSVSource(file), domain.OriginUpload, header.Filename)
		if err != nil {
			logrus.Error(err)

			if strings.Contains(err.Error(), "erro ao carregar os dados de venda") {
				apiErrors.WriteError(w, apiErrors.ErrInvalidUploadFile, err.Error(), nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao processar o arquivo de vendas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// parseDateRangeQuery lê start_date e end_date (YYYY-MM-DD), ambos
// obrigatórios.
func parseDateRangeQuery(r *http.Request) (time.Time, time.Time, error) {
	startStr := r.URL.Query().Get("start_date")
	endStr := r.URL.Query().Get("end_date")
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date e end_date são obrigatórios")
	}

	start, err := utils.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date inválido: %w", err)
	}

	end, err := utils.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date inválido: %w", err)
	}

	return *start, *end, nil
}

// ListSalesRecords devolve os registros canônicos do intervalo pedido.
func ListSalesRecords(salesRepo repository.SalesRecordRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := parseDateRangeQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		records, err := salesRepo.ListBetween(start, end)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar registros de venda", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// ExportSales baixa os registros do intervalo como CSV, no mesmo formato
// aceito pelo upload.
func ExportSales(salesRepo repository.SalesRecordRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := parseDateRangeQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		records, err := salesRepo.ListBetween(start, end)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao exportar registros de venda", nil)
			return
		}

		filename := fmt.Sprintf("sales_%s_%s.csv",
			start.Format("2006-01-02"), end.Format("2006-01-02"))

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		writer := csv.NewWriter(w)
		if err := writer.Write([]string{"date", "brand", "channel", "sku", "revenue", "units"}); err != nil {
			logrus.Error(err)
			return
		}

		for _, record := range records {
			row := []string{
				record.Date.Format("2006-01-02"),
				record.Brand,
				record.Channel,
				record.SKU,
				record.Revenue.String(),
				strconv.Itoa(record.Units),
			}
			if err := writer.Write(row); err != nil {
				logrus.Error(err)
				return
			}
		}

		writer.Flush()
		if err := writer.Error(); err != nil {
			logrus.Error(err)
		}
	}
}

// ListUploadAudits lista as auditorias de ingestão mais recentes.
func ListUploadAudits(auditRepo repository.UploadAuditRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultAuditListLimit
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		audits, err := auditRepo.List(limit)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar auditorias de upload", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(audits); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
