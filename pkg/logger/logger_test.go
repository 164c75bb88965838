package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Output: &buf})

	l.Info().Str("data_type", "inventory").Int("rows", 3).Msg("planilha processada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "inventory", line["data_type"])
	assert.Equal(t, float64(3), line["rows"])
	assert.Equal(t, "planilha processada", line["message"])
}

func TestNew_NivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "error", Output: &buf})

	l.Info().Msg("ignorado")
	assert.Zero(t, buf.Len())

	l.Error().Msg("registrado")
	assert.NotZero(t, buf.Len())
}

func TestNop_NoEscribe(t *testing.T) {
	l := Nop()
	l.Error().Msg("nada")
}

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "debug", Output: &buf}).Component("importer")

	l.Debug().Msg("lote")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "importer", line["component"])
	assert.Equal(t, "debug", line["level"])
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "verboso", Output: &buf})

	l.Debug().Msg("ignorado")
	assert.Zero(t, buf.Len())
	l.Info().Msg("registrado")
	assert.NotZero(t, buf.Len())
}
