package trainer

import "context"
import "path/filepath"
import rand "math/rand/v2"
import "testing"

import "github.com/pkg/errors"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/neurlang/blobcount/layer"
import "github.com/neurlang/blobcount/layer/full"
import "github.com/neurlang/blobcount/learning"
import "github.com/neurlang/blobcount/monitoring"
import "github.com/neurlang/blobcount/net/feedforward"

type example struct {
	in []float64
	y  float64
}

func (e example) Tensor() []float64 { return e.in }
func (e example) Target() float64   { return e.y }

func sums(n int, seed uint64) []example {
	r := rand.New(rand.NewPCG(seed, 1))
	o := make([]example, n)
	for i := range o {
		in := make([]float64, 4)
		var y float64
		for j := range in {
			in[j] = r.Float64()
			y += in[j]
		}
		o[i] = example{in: in, y: y}
	}
	return o
}

func linear(t *testing.T) *feedforward.FeedforwardNetwork {
	var net feedforward.FeedforwardNetwork
	net.NewLayer(full.MustNew(1, layer.Linear))
	require.NoError(t, net.Build(layer.Flat(4)))
	return &net
}

func hyper(epochs int) *learning.HyperParameters {
	h := learning.Default()
	h.Epochs = epochs
	h.BatchSize = 8
	h.LearningRate = 0.05
	h.Threads = 3
	return h
}

func TestFitLearnsSum(t *testing.T) {
	net := linear(t)
	var calls int
	history, err := Fit(context.Background(), net, sums(64, 1), sums(16, 2), hyper(150),
		CallbackFunc(func(logs Logs) {
			calls++
			assert.Equal(t, calls, logs.Epoch)
			assert.Equal(t, 150, logs.Epochs)
		}))
	require.NoError(t, err)
	assert.Equal(t, 150, calls)
	require.Equal(t, 150, history.Len())
	assert.Len(t, history.ValLoss, 150)
	assert.Less(t, history.Loss[149], history.Loss[0]/10)
	assert.Less(t, history.ValLoss[149], history.ValLoss[0]/10)

	m := Evaluate(net, sums(32, 3), 2)
	assert.Equal(t, 32, m.Samples)
	assert.Less(t, m.MSE, 0.05)
}

func TestFitErrors(t *testing.T) {
	net := linear(t)
	_, err := Fit[example](context.Background(), net, nil, nil, hyper(1))
	assert.Equal(t, ErrEmpty, err)

	bad := []example{{in: []float64{1}, y: 1}}
	_, err = Fit(context.Background(), net, bad, nil, hyper(1))
	assert.True(t, errors.Is(err, feedforward.ErrShape))

	h := hyper(1)
	h.BatchSize = 0
	_, err = Fit(context.Background(), net, sums(4, 1), nil, h)
	assert.Error(t, err)

	var unbuilt feedforward.FeedforwardNetwork
	_, err = Fit(context.Background(), &unbuilt, sums(4, 1), nil, hyper(1))
	assert.Error(t, err)
}

func TestFitCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fit(ctx, linear(t), sums(16, 1), nil, hyper(5))
	assert.Equal(t, context.Canceled, err)
}

func exact(t *testing.T) *feedforward.FeedforwardNetwork {
	net := linear(t)
	copy(net.GetLayer(0).Params(), []float64{1, 1, 1, 1, 0})
	return net
}

func TestEvaluate(t *testing.T) {
	net := exact(t)
	set := []example{
		{in: []float64{1, 1, 0, 0}, y: 2},
		{in: []float64{1, 1, 1, 0}, y: 2},
		{in: []float64{0, 0, 0, 0}, y: 0},
		{in: []float64{0.5, 0, 0, 0}, y: 2},
	}
	m := NewEvaluateFunc(net, set, 2)()
	assert.Equal(t, 4, m.Samples)
	assert.InDelta(t, (1+2.25)/4, m.MSE, 1e-12)
	assert.InDelta(t, (1+1.5)/4, m.MAE, 1e-12)
	assert.InDelta(t, 0.5, m.Accuracy, 1e-12)
	assert.Greater(t, m.StdDev, 0.0)

	assert.Equal(t, Metrics{}, Evaluate[example](net, nil, 2))
}

func TestWorst(t *testing.T) {
	net := exact(t)
	set := sums(10, 4)
	set[5].y += 5
	set[2].y -= 2
	set[7].y += 0.5
	assert.Equal(t, []int{5, 2}, Worst(net, set, 2, 2))
	assert.Len(t, Worst(net, set, 50, 2), 10)
	assert.Nil(t, Worst[example](net, nil, 2, 2))
	assert.Nil(t, Worst(net, set, 0, 2))
	assert.Nil(t, Worst(net, set, -1, 2))
}

func TestResume(t *testing.T) {
	src := exact(t)
	name := filepath.Join(t.TempDir(), "sum.json.lzw")
	require.NoError(t, src.WriteCompressedWeightsToFile(name))

	dst := linear(t)
	no := false
	yes := true
	assert.False(t, Resume(dst, &no, &name))
	assert.False(t, Resume(dst, nil, &name))
	assert.True(t, Resume(dst, &yes, &name))
	assert.Equal(t, src.Params(), dst.Params())

	missing := filepath.Join(t.TempDir(), "missing.json.lzw")
	assert.False(t, Resume(dst, &yes, &missing))
}

func TestHistoryAndLog(t *testing.T) {
	var lines []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, format)
	})
	defer monitoring.SetLogger(nil)

	var h History
	for _, c := range []Callback{&h, LogCallback} {
		c.OnEpochEnd(Logs{Epoch: 1, Epochs: 2, Loss: 3, ValLoss: 4})
	}
	assert.Equal(t, History{Loss: []float64{3}, ValLoss: []float64{4}}, h)
	assert.Len(t, lines, 1)

	c := h.Clone()
	c.Loss[0] = 9
	assert.Equal(t, 3.0, h.Loss[0])
}
