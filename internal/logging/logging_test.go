package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(&buf, false), "widget")

	log.Info().Str("endpoint", "/api/chat/").Msg("sent")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "widget", entry["component"])
	assert.Equal(t, "/api/chat/", entry["endpoint"])
	assert.Equal(t, "sent", entry["message"])
}

func TestNew_VerboseLevel(t *testing.T) {
	var buf bytes.Buffer

	quiet := New(&buf, false)
	quiet.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	l := New(&buf, true)
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
	l.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNop(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, Nop().GetLevel())
}
