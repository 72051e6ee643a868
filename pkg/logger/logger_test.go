package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_NivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(Config{Env: "production", Level: "warn"}, &buf)

	l.Info().Msg("silenciado")
	l.Warn().Msg("emitido")

	out := buf.String()
	assert.NotContains(t, out, "silenciado")
	assert.Contains(t, out, "emitido")
}

func TestNew_DevelopmentUsaConsola(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(Config{Env: "development", Level: "info"}, &buf)

	l.Info().Msg("hola")

	// ConsoleWriter emite texto plano, no el JSON por línea de producción.
	assert.Contains(t, buf.String(), "hola")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestParseLevel_DesconocidoCaeEnInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verboso"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
}
