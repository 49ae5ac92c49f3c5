package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf).Hook(ContextHook{})

	ctx := WithCategory(context.Background(), "download-progress")
	logger := Component("notify")
	logger.Info().Ctx(ctx).Msg("notification posted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "notify", entry["cmp"])
	assert.Equal(t, "notification posted", entry["message"])
	assert.Equal(t, "download-progress", entry["category"], "context hook survives With()")
}
