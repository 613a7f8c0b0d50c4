package billing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextNumber_StartsAtOne(t *testing.T) {
	assert.Equal(t, "FAC-2026-0001", NextNumber("", 2026))
}

func TestNextNumber_SequentialChain(t *testing.T) {
	latest := ""
	for i := 1; i <= 12; i++ {
		latest = NextNumber(latest, 2026)
		assert.Equal(t, fmt.Sprintf("FAC-2026-%04d", i), latest)
	}
}

func TestNextNumber_YearIsolation(t *testing.T) {
	// A new year never continues the old year's sequence, whatever the count.
	assert.Equal(t, "FAC-2027-0001", NextNumber("FAC-2026-0458", 2027))
}

func TestNextNumber_UnparseableSuffixRestarts(t *testing.T) {
	assert.Equal(t, "FAC-2026-0001", NextNumber("FAC-2026-draft", 2026))
	assert.Equal(t, "FAC-2026-0001", NextNumber("FAC-2026-", 2026))
}

func TestNextNumber_GrowsPastPadding(t *testing.T) {
	assert.Equal(t, "FAC-2026-10000", NextNumber("FAC-2026-9999", 2026))
}

func TestNumberPrefix(t *testing.T) {
	assert.Equal(t, "FAC-2026-", NumberPrefix(2026))
}
