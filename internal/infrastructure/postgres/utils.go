package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isCheckViolation verifica si un error es una violación de CHECK (23514), ej. current_stock >= 0.
func isCheckViolation(err error) bool {
	return hasCode(err, "23514")
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

// isInvalidText verifica si un valor no se pudo convertir al tipo de la columna (22P02),
// ej. un id que no es UUID.
func isInvalidText(err error) bool {
	return hasCode(err, "22P02")
}

// validID indica si id puede compararse con una columna UUID. Los ids de URL o body que no
// lo son no existen: se responden como no encontrados sin ir a la base ni abortar la tx.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// updatedAt usa created_at cuando la entidad nunca fue modificada.
func updatedAt(created, updated time.Time) time.Time {
	if updated.IsZero() {
		return created
	}
	return updated
}
