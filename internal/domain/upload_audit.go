package domain

import "time"

// UploadAudit registra uma execução de ingestão: upload de CSV, sincronização
// do feed ou carga de demonstração. Linhas rejeitadas nunca abortam o lote;
// ficam contadas aqui com as primeiras mensagens de rejeição.
type UploadAudit struct {
	ID           string    `json:"id"`
	Origin       string    `json:"origin"`
	Filename     string    `json:"filename,omitempty"`
	RowsReceived int       `json:"rows_received"`
	RowsAccepted int       `json:"rows_accepted"`
	RowsRejected int       `json:"rows_rejected"`
	Errors       []string  `json:"errors,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
