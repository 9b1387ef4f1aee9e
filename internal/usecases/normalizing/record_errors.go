package normalizing

import (
	"errors"
	"fmt"
)

// Tipos de erros de validação de registros de venda
var (
	ErrValidation     = errors.New("registro de venda inválido")
	ErrMissingDate    = errors.New("data ausente ou fora da janela aceita")
	ErrInvalidDate    = errors.New("data em formato não reconhecido")
	ErrMissingBrand   = errors.New("marca ausente")
	ErrUnknownChannel = errors.New("canal ausente ou não cadastrado")
	ErrInvalidRevenue = errors.New("receita negativa ou não numérica")
	ErrInvalidUnits   = errors.New("quantidade negativa ou não inteira")
)

// RecordError é o erro de uma única linha do lote. Linhas inválidas nunca
// abortam o lote: são puladas e relatadas junto com o conjunto válido.
type RecordError struct {
	Err    error  // Erro base
	Index  int    // Posição da linha no lote de entrada
	Field  string // Campo que causou a rejeição
	Reason string // Detalhe legível para o relatório de ingestão
}

// Error implementa a interface error
func (e *RecordError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("row %d: %s: %s", e.Index, e.Err.Error(), e.Reason)
	}
	return fmt.Sprintf("row %d: %s", e.Index, e.Err.Error())
}

// Unwrap retorna o erro subjacente
func (e *RecordError) Unwrap() error {
	return e.Err
}

// IsValidationError verifica se o erro veio da validação de uma linha
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrMissingBrand) ||
		errors.Is(err, ErrUnknownChannel) ||
		errors.Is(err, ErrInvalidRevenue) ||
		errors.Is(err, ErrInvalidUnits)
}

// NewRecordError cria um erro de validação de linha
func NewRecordError(baseErr error, field string, reason string) *RecordError {
	return &RecordError{
		Err:    baseErr,
		Field:  field,
		Reason: reason,
	}
}
