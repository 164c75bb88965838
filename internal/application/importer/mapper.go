package importer

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
)

// Claves lógicas por tipo de datos. El header de cada una es mapping[key] o la propia clave.
var logicalKeys = map[string][]string{
	entity.DataTypeInventory: {"code", "name", "category", "quantity"},
	entity.DataTypeOrders:    {"client", "order_type", "description", "requested_date"},
	entity.DataTypeClients:   {"name", "email", "phone", "address"},
}

// Formatos aceptados para requested_date cuando la celda llega como texto.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02/01/2006 15:04",
}

// InventoryRecord fila de inventario ya tipada.
type InventoryRecord struct {
	Row      int
	Code     string
	Name     string
	Category string
	Quantity int
	Issues   []string
}

// OrderRecord fila de órdenes ya tipada.
type OrderRecord struct {
	Row           int
	Client        string
	OrderType     string
	Description   string
	RequestedDate time.Time
	Issues        []string
}

// ClientRecord fila de clientes ya tipada.
type ClientRecord struct {
	Row     int
	Name    string
	Email   string
	Phone   string
	Address string
	Issues  []string
}

// Mapper resuelve las columnas de una hoja según el column_mapping del request.
// Nunca falla: los problemas de conversión quedan en Issues del registro.
type Mapper struct {
	mapping map[string]string
}

// NewMapper construye un mapper; mapping puede ser nil.
func NewMapper(mapping map[string]string) *Mapper {
	return &Mapper{mapping: mapping}
}

func (m *Mapper) header(key string) string {
	if h, ok := m.mapping[key]; ok && strings.TrimSpace(h) != "" {
		return strings.TrimSpace(h)
	}
	return key
}

func (m *Mapper) value(row Row, key string) any {
	return row[m.header(key)]
}

// Warnings avisos a nivel de lote: claves desconocidas para el tipo y headers
// mapeados que la hoja no contiene.
func (m *Mapper) Warnings(dataType string, headers []string) []string {
	known := make(map[string]bool, len(logicalKeys[dataType]))
	for _, k := range logicalKeys[dataType] {
		known[k] = true
	}
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	keys := make([]string, 0, len(m.mapping))
	for k := range m.mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var warnings []string
	for _, k := range keys {
		if !known[k] {
			warnings = append(warnings, fmt.Sprintf("Campo de mapeamento desconhecido para %s: %s", dataType, k))
			continue
		}
		if h := m.header(k); !present[h] {
			warnings = append(warnings, fmt.Sprintf("Coluna %q mapeada para %s não encontrada na planilha", h, k))
		}
	}
	return warnings
}

// Inventory convierte una fila (rowNum 1-based) en InventoryRecord.
func (m *Mapper) Inventory(rowNum int, row Row) InventoryRecord {
	rec := InventoryRecord{
		Row:      rowNum,
		Code:     text(m.value(row, "code")),
		Name:     text(m.value(row, "name")),
		Category: text(m.value(row, "category")),
	}
	qty, issue := quantity(m.value(row, "quantity"))
	rec.Quantity = qty
	if issue != "" {
		rec.Issues = append(rec.Issues, issue)
	}
	return rec
}

// Orders convierte una fila en OrderRecord; now es el valor por defecto de requested_date.
func (m *Mapper) Orders(rowNum int, row Row, now time.Time) OrderRecord {
	rec := OrderRecord{
		Row:         rowNum,
		Client:      text(m.value(row, "client")),
		OrderType:   strings.ToLower(text(m.value(row, "order_type"))),
		Description: text(m.value(row, "description")),
	}
	if rec.OrderType == "" {
		rec.OrderType = entity.OrderTypeDelivery
	} else if !entity.ValidOrderType(rec.OrderType) {
		rec.Issues = append(rec.Issues, fmt.Sprintf("Tipo de ordem inválido: %s", rec.OrderType))
	}
	date, issue := requestedDate(m.value(row, "requested_date"), now)
	rec.RequestedDate = date
	if issue != "" {
		rec.Issues = append(rec.Issues, issue)
	}
	return rec
}

// Clients convierte una fila en ClientRecord.
func (m *Mapper) Clients(rowNum int, row Row) ClientRecord {
	return ClientRecord{
		Row:     rowNum,
		Name:    text(m.value(row, "name")),
		Email:   text(m.value(row, "email")),
		Phone:   text(m.value(row, "phone")),
		Address: text(m.value(row, "address")),
	}
}

// text normaliza una celda a texto. Los números enteros se escriben sin decimales
// (un código 1001 leído como 1001.0 vuelve a ser "1001").
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02 15:04:05")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// quantity convierte la celda en una cantidad entera no negativa. Vacía = 0.
func quantity(v any) (int, string) {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, ""
	case float64:
		f = t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, ""
		}
		parsed, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return 0, fmt.Sprintf("Quantidade inválida: %s", s)
		}
		f = parsed
	default:
		return 0, fmt.Sprintf("Quantidade inválida: %s", text(v))
	}
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0, "Quantidade inválida"
	case f != math.Trunc(f):
		return 0, "Quantidade deve ser um número inteiro"
	case f < 0:
		return 0, "Quantidade não pode ser negativa"
	case f > math.MaxInt32:
		return 0, "Quantidade fora do intervalo permitido"
	}
	return int(f), ""
}

// requestedDate acepta fechas nativas o texto en los formatos conocidos. Vacía = now.
func requestedDate(v any, now time.Time) (time.Time, string) {
	switch t := v.(type) {
	case nil:
		return now, ""
	case time.Time:
		return t, ""
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return now, ""
		}
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d, ""
			}
		}
		return now, fmt.Sprintf("Data solicitada inválida: %s", s)
	default:
		return now, fmt.Sprintf("Data solicitada inválida: %s", text(v))
	}
}
