package safeconv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/gitgauge/pkg/safeconv"
)

func TestMustUintToInt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 42, safeconv.MustUintToInt(42))
	assert.Equal(t, 0, safeconv.MustUintToInt(0))
	assert.Panics(t, func() { safeconv.MustUintToInt(^uint(0)) })
}

func TestMustIntToUint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint(7), safeconv.MustIntToUint(7))
	assert.Panics(t, func() { safeconv.MustIntToUint(-1) })
}
