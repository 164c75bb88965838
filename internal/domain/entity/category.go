package entity

import "time"

// DefaultCategoryName categoría asignada cuando la fila importada no trae categoría.
const DefaultCategoryName = "Sem Categoria"

// Category representa una categoría de productos. El nombre es único.
type Category struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
