package spreadsheet

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/extrame/xls"

	"github.com/jhoicas/LogFlow-api/internal/application/importer"
	"github.com/jhoicas/LogFlow-api/internal/domain"
)

const xlsCharset = "utf-8"

// decodeXLS lee la primera hoja de un libro BIFF. extrame/xls entrega cada celda ya
// formateada como texto; los números y fechas se recuperan en textValue.
func decodeXLS(data []byte) (sheet *importer.Sheet, err error) {
	// El lector BIFF entra en pánico con archivos truncados o corruptos.
	defer func() {
		if r := recover(); r != nil {
			sheet, err = nil, fmt.Errorf("%w: xls inválido: %v", domain.ErrDecode, r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), xlsCharset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: planilha sem abas", domain.ErrDecode)
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, fmt.Errorf("%w: planilha sem abas", domain.ErrDecode)
	}

	var grid [][]string
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		grid = append(grid, cells)
	}
	return sheetFromText(grid), nil
}

// sheetFromText arma la hoja a partir de celdas de texto: la fila 0 son los headers.
// Las filas finales vacías se descartan; las intermedias se conservan para no alterar
// la numeración.
func sheetFromText(grid [][]string) *importer.Sheet {
	for len(grid) > 0 && blankRow(grid[len(grid)-1]) {
		grid = grid[:len(grid)-1]
	}
	if len(grid) == 0 {
		return &importer.Sheet{Headers: []string{}, Rows: []importer.Row{}}
	}
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	headers := normalizeHeaders(grid[0], width)

	out := make([]importer.Row, 0, len(grid)-1)
	for _, raw := range grid[1:] {
		row := importer.Row{}
		for col, text := range raw {
			if v, ok := textValue(text); ok {
				row[headers[col]] = v
			}
		}
		out = append(out, row)
	}
	return &importer.Sheet{Headers: headers, Rows: out}
}

// textValue convierte el texto de una celda: número a float64, fecha ISO a time.Time y
// el resto como string. Celdas en blanco no producen valor.
func textValue(text string) (any, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	if num, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
		return num, true
	}
	if t, ok := parseISODate(strings.TrimSpace(text)); ok {
		return t, true
	}
	return text, true
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
