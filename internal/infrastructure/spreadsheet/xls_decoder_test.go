package spreadsheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LogFlow-api/internal/domain"
)

// ────────────────────────────────────────────────────────────────────────────────
// .xls
// ────────────────────────────────────────────────────────────────────────────────

func TestDecodeXLS_BytesInvalidos(t *testing.T) {
	for name, data := range map[string][]byte{
		"vacío":           {},
		"texto":           []byte("esto no es un libro BIFF"),
		"cabecera OLE2":   {0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1},
		"xlsx renombrado": buildWorkbook(t, [][]any{{"code"}, {"A1"}}),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewExcelDecoder().Decode("viejo.xls", data)
			assert.ErrorIs(t, err, domain.ErrDecode)
		})
	}
}

func TestSheetFromText_TiposYNumeracion(t *testing.T) {
	sheet := sheetFromText([][]string{
		{" code ", "name", "quantity", "requested_date", ""},
		{"A1", "Widget", "10", "2025-08-12", "extra"},
		nil,
		{"1001", " Gadget ", "2.5", "", ""},
		{"", "  "},
	})

	assert.Equal(t, []string{"code", "name", "quantity", "requested_date", "Unnamed: 4"}, sheet.Headers)
	require.Len(t, sheet.Rows, 3, "la fila vacía final se descarta, la intermedia no")

	first := sheet.Rows[0]
	assert.Equal(t, "A1", first["code"])
	assert.Equal(t, 10.0, first["quantity"])
	assert.Equal(t, time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC), first["requested_date"])
	assert.Equal(t, "extra", first["Unnamed: 4"])

	assert.Empty(t, sheet.Rows[1])

	third := sheet.Rows[2]
	assert.Equal(t, 1001.0, third["code"])
	assert.Equal(t, " Gadget ", third["name"])
	assert.Equal(t, 2.5, third["quantity"])
	_, present := third["requested_date"]
	assert.False(t, present, "las celdas vacías no aparecen en la fila")
}

func TestSheetFromText_Vacia(t *testing.T) {
	sheet := sheetFromText([][]string{nil, {"", ""}})
	assert.Equal(t, []string{}, sheet.Headers)
	assert.Empty(t, sheet.Rows)

	sheet = sheetFromText([][]string{{"code", "name"}})
	assert.Equal(t, []string{"code", "name"}, sheet.Headers)
	assert.Empty(t, sheet.Rows)
}
