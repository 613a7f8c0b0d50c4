package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundGNF(t *testing.T) {
	assert.Equal(t, int64(750000), RoundGNF(15000000*0.05))
	assert.Equal(t, int64(60000), RoundGNF(59999.94))
	assert.Equal(t, int64(0), RoundGNF(0.4))
	assert.Equal(t, int64(1), RoundGNF(0.5))
	assert.Equal(t, int64(-2), RoundGNF(-1.5))
}

func TestFormatGNF(t *testing.T) {
	assert.Equal(t, "0 GNF", FormatGNF(0))
	assert.Equal(t, "500 GNF", FormatGNF(500))
	assert.Equal(t, "15 750 000 GNF", FormatGNF(15_750_000))
	assert.Equal(t, "-2 000 000 GNF", FormatGNF(-2_000_000))
}
