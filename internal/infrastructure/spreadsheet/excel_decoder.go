// Package spreadsheet lee planillas Excel: xlsx y familia con excelize, .xls (BIFF) con extrame/xls.
package spreadsheet

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/LogFlow-api/internal/application/importer"
	"github.com/jhoicas/LogFlow-api/internal/domain"
)

var _ importer.SheetDecoder = (*ExcelDecoder)(nil)

// Extensiones aceptadas; .xls va por decodeXLS.
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
	".xls":  true,
}

// Formatos de fecha integrados de Excel (numFmtId).
func builtinDateFormat(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 27 && id <= 36) || (id >= 45 && id <= 47) || (id >= 50 && id <= 58)
}

// ExcelDecoder decodifica la primera hoja: la fila 1 son los headers y el resto datos.
type ExcelDecoder struct{}

// NewExcelDecoder construye el decoder.
func NewExcelDecoder() *ExcelDecoder {
	return &ExcelDecoder{}
}

// CheckFormat valida la extensión del archivo.
func (d *ExcelDecoder) CheckFormat(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedExtensions[ext] {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}
	return nil
}

// Decode abre el libro y convierte la primera hoja en filas tipadas.
func (d *ExcelDecoder) Decode(filename string, data []byte) (*importer.Sheet, error) {
	if err := d.CheckFormat(filename); err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(filename), ".xls") {
		return decodeXLS(data)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: planilha sem abas", domain.ErrDecode)
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	if len(rows) == 0 {
		return &importer.Sheet{Headers: []string{}, Rows: []importer.Row{}}, nil
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	r := &cellReader{f: f, sheet: sheetName, date1904: date1904, dateStyles: map[int]bool{}}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	headers := normalizeHeaders(rows[0], width)

	out := make([]importer.Row, 0, len(rows)-1)
	// Las filas vacías intermedias se conservan para no alterar la numeración.
	for i, raw := range rows[1:] {
		excelRow := i + 2
		row := importer.Row{}
		for col, value := range raw {
			if value == "" {
				continue
			}
			v, err := r.value(col+1, excelRow, value)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
			}
			row[headers[col]] = v
		}
		out = append(out, row)
	}
	return &importer.Sheet{Headers: headers, Rows: out}, nil
}

// normalizeHeaders recorta, nombra las columnas sin header como "Unnamed: i" y
// desambigua duplicados como "nombre.1", "nombre.2".
func normalizeHeaders(first []string, width int) []string {
	headers := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		h := ""
		if i < len(first) {
			h = strings.TrimSpace(first[i])
		}
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		base := h
		for seen[h] > 0 {
			h = fmt.Sprintf("%s.%d", base, seen[base])
			seen[base]++
		}
		seen[h]++
		headers[i] = h
	}
	return headers
}

// cellReader resuelve el tipo de cada celda consultando el libro; los estilos se cachean.
type cellReader struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

func (r *cellReader) value(col, row int, raw string) (any, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}
	cellType, err := r.f.GetCellType(r.sheet, cell)
	if err != nil {
		return nil, err
	}
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return raw, nil
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true"), nil
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return t, nil
		}
		return raw, nil
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw, nil
	}
	isDate, err := r.isDateStyle(cell)
	if err != nil {
		return nil, err
	}
	if isDate {
		t, err := excelize.ExcelDateToTime(num, r.date1904)
		if err == nil {
			return t, nil
		}
	}
	return num, nil
}

func (r *cellReader) isDateStyle(cell string) (bool, error) {
	styleID, err := r.f.GetCellStyle(r.sheet, cell)
	if err != nil {
		return false, err
	}
	if styleID == 0 {
		return false, nil
	}
	if v, ok := r.dateStyles[styleID]; ok {
		return v, nil
	}
	style, err := r.f.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	var isDate bool
	if style.CustomNumFmt != nil {
		isDate = customDateFormat(*style.CustomNumFmt)
	} else {
		isDate = builtinDateFormat(style.NumFmt)
	}
	r.dateStyles[styleID] = isDate
	return isDate, nil
}

// customDateFormat detecta códigos de fecha/hora en un formato personalizado,
// ignorando literales entre comillas, secciones [..] y caracteres escapados.
func customDateFormat(format string) bool {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, c := range format {
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '[':
			inBracket = true
		case c == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(c)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ymdhs")
}

func parseISODate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
