package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := InitWithWriter("debug", "json", &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	logger.Debug().Str("source", "file").Msg("LoadProducts: loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "file", entry["source"])
	assert.Equal(t, "LoadProducts: loaded", entry["message"])
}

func TestInitWithWriterFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := InitWithWriter("verbose", "json", &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	logger.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
