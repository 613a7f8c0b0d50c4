package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestWithComponentTagsChainedEvents(t *testing.T) {
	prev := log.Logger
	defer func() { log.Logger = prev }()

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	// Chained directly off the return value, the way the middlewares and
	// controllers use it.
	WithComponent("billing").Error().Str("invoice", "FAC-2026-0001").Msg("tagged")

	out := buf.String()
	assert.Contains(t, out, `"component":"billing"`)
	assert.Contains(t, out, `"invoice":"FAC-2026-0001"`)
	assert.Contains(t, out, `"level":"error"`)
}

func TestWithComponentIsIndependentPerCall(t *testing.T) {
	prev := log.Logger
	defer func() { log.Logger = prev }()

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	audit := WithComponent("audit")
	pdf := WithComponent("pdf")
	audit.Warn().Msg("first")
	pdf.Warn().Msg("second")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), `"component":"audit"`)
	assert.Contains(t, string(lines[1]), `"component":"pdf"`)
}
