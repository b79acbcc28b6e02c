package feedforward

import "github.com/neurlang/blobcount/layer"
import "github.com/neurlang/blobcount/layer/conv2d"
import "github.com/neurlang/blobcount/layer/full"
import "github.com/neurlang/blobcount/layer/maxpool2d"

// NewBlobCounter builds the counting regression network for size×size single channel grids:
// two conv/pool stages, a 64 unit dense layer and one linear output.
func NewBlobCounter(size int) (*FeedforwardNetwork, error) {
	var net FeedforwardNetwork
	net.NewLayer(conv2d.MustNew(3, 3, 16, layer.ReLU))
	net.NewLayer(maxpool2d.MustNew(2, 2, 2))
	net.NewLayer(conv2d.MustNew(3, 3, 32, layer.ReLU))
	net.NewLayer(maxpool2d.MustNew(2, 2, 2))
	net.NewLayer(full.MustNew(64, layer.ReLU))
	net.NewLayer(full.MustNew(1, layer.Linear))
	if err := net.Build(layer.Shape{Height: size, Width: size, Depth: 1}); err != nil {
		return nil, err
	}
	return &net, nil
}
