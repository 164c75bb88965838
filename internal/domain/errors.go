package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los mensajes llegan al usuario final.
var (
	ErrNotFound      = errors.New("recurso não encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrUnauthorized  = errors.New("não autorizado")
	ErrForbidden     = errors.New("acesso negado")
	ErrNegativeStock = errors.New("estoque não pode ficar negativo")

	// Importación de planillas.
	ErrUnsupportedFormat   = errors.New("formato de arquivo não suportado")
	ErrDecode              = errors.New("erro ao ler planilha")
	ErrUnsupportedDataType = errors.New("tipo de dados não suportado")
	ErrFileNotFound        = errors.New("arquivo não encontrado")
	ErrBatchAborted        = errors.New("lote abortado por falha no armazenamento")
)
