package full

import "testing"

import "github.com/neurlang/blobcount/layer"
import "github.com/neurlang/blobcount/layer/layertest"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestLay(t *testing.T) {
	c, err := MustNew(64, layer.ReLU).Lay(layer.Shape{Height: 4, Width: 4, Depth: 32})
	require.NoError(t, err)
	assert.Equal(t, layer.Flat(64), c.Shape())
	assert.Len(t, c.Params(), 512*64+64)
	assert.Equal(t, "dense", c.Name())

	_, err = New(0, layer.Linear)
	assert.Error(t, err)
	_, err = MustNew(1, layer.Linear).Lay(layer.Shape{})
	assert.Error(t, err)
}

func TestForward(t *testing.T) {
	c, err := MustNew(2, layer.ReLU).Lay(layer.Flat(3))
	require.NoError(t, err)
	copy(c.Params(), []float64{
		1, -1,
		2, -2,
		3, -3,
		0.5, 0.25,
	})
	out := make([]float64, 2)
	c.Forward([]float64{1, 0, 1}, out)
	assert.Equal(t, []float64{4.5, 0}, out)
}

func TestGradients(t *testing.T) {
	c, err := MustNew(4, layer.Linear).Lay(layer.Shape{Height: 2, Width: 2, Depth: 3})
	require.NoError(t, err)
	copy(c.Params(), layertest.Random(len(c.Params()), 21))
	layertest.CheckGradients(t, c, layertest.Random(12, 22))
}

func TestGradientsReLU(t *testing.T) {
	c, err := MustNew(5, layer.ReLU).Lay(layer.Flat(6))
	require.NoError(t, err)
	copy(c.Params(), layertest.Random(len(c.Params()), 23))
	layertest.CheckGradients(t, c, layertest.Random(6, 24))
}
