package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-admin/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestComponent_AgregaAppYComponent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", App: "storefront-admin", Out: &buf})

	cart := log.Component("cart")
	cart.Info().Str("product", "1").Msg("línea agregada")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "storefront-admin", entry["app"])
	assert.Equal(t, "cart", entry["component"])
	assert.Equal(t, "línea agregada", entry["message"])
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "ruidoso", Out: &buf})

	log.Debug().Msg("oculto")
	assert.Zero(t, buf.Len())

	log.Info().Msg("visible")
	assert.Equal(t, "info", decodeLine(t, &buf)["level"])
}
