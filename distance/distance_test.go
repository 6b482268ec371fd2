package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 5, 6}
	assert.Equal(t, 32.0, Dot(a, b))
}

func TestSquaredL2(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{3, 4}
	assert.Equal(t, 25.0, SquaredL2(a, b))
	assert.Equal(t, 0.0, SquaredL2(a, a))
}

func TestL2(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{3, 4}
	assert.Equal(t, 5.0, L2(a, b))
}

func TestScaleInPlace(t *testing.T) {
	v := []float64{2, 4, 6}
	ScaleInPlace(v, 0.5)
	assert.Equal(t, []float64{1, 2, 3}, v)
}
