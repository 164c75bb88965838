package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
)

func TestText(t *testing.T) {
	assert.Equal(t, "", text(nil))
	assert.Equal(t, "Widget", text("  Widget "))
	assert.Equal(t, "1001", text(1001.0))
	assert.Equal(t, "2.5", text(2.5))
	assert.Equal(t, "true", text(true))
	assert.Equal(t, "2025-08-12", text(time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-08-12 10:30:00", text(time.Date(2025, 8, 12, 10, 30, 0, 0, time.UTC)))
}

func TestQuantity(t *testing.T) {
	cases := []struct {
		in    any
		want  int
		issue string
	}{
		{nil, 0, ""},
		{"", 0, ""},
		{10.0, 10, ""},
		{"7", 7, ""},
		{"3,0", 3, ""},
		{-2.0, 0, "Quantidade não pode ser negativa"},
		{1.5, 0, "Quantidade deve ser um número inteiro"},
		{"abc", 0, "Quantidade inválida: abc"},
		{true, 0, "Quantidade inválida: true"},
		{1e12, 0, "Quantidade fora do intervalo permitido"},
	}
	for _, tc := range cases {
		got, issue := quantity(tc.in)
		assert.Equal(t, tc.want, got, "%v", tc.in)
		assert.Equal(t, tc.issue, issue, "%v", tc.in)
	}
}

func TestRequestedDate(t *testing.T) {
	now := time.Date(2025, 8, 12, 23, 31, 26, 0, time.UTC)

	d, issue := requestedDate(nil, now)
	assert.Empty(t, issue)
	assert.Equal(t, now, d)

	d, issue = requestedDate("15/09/2025", now)
	assert.Empty(t, issue)
	assert.Equal(t, "2025-09-15", d.Format("2006-01-02"))

	d, issue = requestedDate("2025-09-15 08:00:00", now)
	assert.Empty(t, issue)
	assert.Equal(t, 8, d.Hour())

	_, issue = requestedDate("ontem", now)
	assert.Equal(t, "Data solicitada inválida: ontem", issue)

	_, issue = requestedDate(45000.0, now)
	assert.Equal(t, "Data solicitada inválida: 45000", issue)
}

func TestMapper_HeaderPorDefectoYMapeado(t *testing.T) {
	row := Row{"code": "A1", "Nome do produto": "Widget", "name": "ignorado"}

	rec := NewMapper(map[string]string{"name": "Nome do produto", "category": " "}).Inventory(3, row)

	assert.Equal(t, 3, rec.Row)
	assert.Equal(t, "A1", rec.Code)
	assert.Equal(t, "Widget", rec.Name)
	assert.Equal(t, "", rec.Category, "un mapeo en blanco vuelve a la clave lógica")
	assert.Equal(t, 0, rec.Quantity)
	assert.Empty(t, rec.Issues)
}

func TestMapper_Warnings(t *testing.T) {
	m := NewMapper(map[string]string{"client": "Cliente", "order_type": "order_type", "peso": "Peso"})

	warnings := m.Warnings(entity.DataTypeOrders, []string{"Cliente", "descricao"})

	assert.Equal(t, []string{
		`Coluna "order_type" mapeada para order_type não encontrada na planilha`,
		"Campo de mapeamento desconhecido para orders: peso",
	}, warnings)
	assert.Empty(t, NewMapper(nil).Warnings(entity.DataTypeClients, nil))
}

func TestSynthesizeEmail(t *testing.T) {
	assert.Equal(t, "ana.souza@exemplo.com", SynthesizeEmail("Ana Souza"))
	assert.Equal(t, "joão.ávila@exemplo.com", SynthesizeEmail(" JOÃO ÁVILA "))
}
