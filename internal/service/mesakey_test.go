package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponerMesaKey(t *testing.T) {
	assert.Equal(t, "7", ComponerMesaKey(7, nil))
	assert.Equal(t, "3+5", ComponerMesaKey(5, []int{3}))
	assert.Equal(t, "3+5", ComponerMesaKey(3, []int{5}))
	assert.Equal(t, "1+2+4", ComponerMesaKey(2, []int{4, 1}))
	// The linking client may echo the main table back.
	assert.Equal(t, "2+4", ComponerMesaKey(2, []int{4, 2}))
}

func TestEsCompuesta(t *testing.T) {
	assert.False(t, EsCompuesta("7"))
	assert.False(t, EsCompuesta("7-1"))
	assert.True(t, EsCompuesta("2+4"))
	assert.True(t, EsCompuesta("2+4-1"))
}

func TestBaseMesaKey(t *testing.T) {
	assert.Equal(t, "7", baseMesaKey("7"))
	assert.Equal(t, "7", baseMesaKey("7-2"))
	assert.Equal(t, "2+4", baseMesaKey("2+4-1"))
	assert.Equal(t, "2+4", baseMesaKey("2+4"))
}

func TestSiguienteSufijo(t *testing.T) {
	assert.Equal(t, "7-1", siguienteSufijo("7", nil))
	assert.Equal(t, "7-3", siguienteSufijo("7", []string{"7-1", "7-2"}))
	// Holes are not reused; only the max matters.
	assert.Equal(t, "7-6", siguienteSufijo("7", []string{"7-5"}))
	// Other bases sharing a textual prefix must not interfere.
	assert.Equal(t, "2+4-2", siguienteSufijo("2+4", []string{"2+4-1", "2+41-9"}))
}
