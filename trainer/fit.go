package trainer

import "context"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"

import "github.com/neurlang/blobcount/learning"
import "github.com/neurlang/blobcount/net/feedforward"
import "github.com/neurlang/blobcount/parallel"

// ErrEmpty is returned when there is nothing to train on.
var ErrEmpty = errors.New("trainer: empty training set")

// Example is one labelled network input.
type Example interface {
	Tensor() []float64
	Target() float64
}

type prepared struct {
	inputs  [][]float64
	targets []float64
}

func prepare[E Example](net *feedforward.FeedforwardNetwork, set []E) (p prepared, err error) {
	p.inputs = make([][]float64, len(set))
	p.targets = make([]float64, len(set))
	for i, e := range set {
		p.inputs[i] = e.Tensor()
		p.targets[i] = e.Target()
		if len(p.inputs[i]) != net.Input().Size() {
			return p, errors.Wrapf(feedforward.ErrShape, "example %d has %d values, network expects %d",
				i, len(p.inputs[i]), net.Input().Size())
		}
	}
	return p, nil
}

// Fit trains net with Adam on the squared error between its output and the
// target. After every epoch the validation set is evaluated and the callbacks
// are called in order. Cancelling ctx stops between batches.
func Fit[E Example](ctx context.Context, net *feedforward.FeedforwardNetwork, train, validation []E,
	h *learning.HyperParameters, callbacks ...Callback) (history History, err error) {

	if len(train) == 0 {
		return history, ErrEmpty
	}
	if !net.Built() {
		return history, errors.New("trainer: network is not built")
	}
	if err := h.Validate(); err != nil {
		return history, err
	}
	threads := h.Threads
	if threads <= 0 {
		threads = parallel.Threads()
	}

	set, err := prepare(net, train)
	if err != nil {
		return history, err
	}
	val, err := prepare(net, validation)
	if err != nil {
		return history, err
	}
	params := net.Params()
	opt := learning.NewAdam(h, params)

	tapes := make(chan *feedforward.Tape, threads)
	all := make([]*feedforward.Tape, threads)
	for i := range all {
		all[i] = net.NewTape()
		tapes <- all[i]
	}
	grads := net.NewTape().Gradients()
	losses := make([]float64, len(train))

	for epoch := 1; epoch <= h.Epochs; epoch++ {
		order := identity(len(train))
		if h.Shuffle {
			order = feedforward.Shuffle(len(train), false)
		}
		for start := 0; start < len(order); start += h.BatchSize {
			if err := ctx.Err(); err != nil {
				return history, err
			}
			end := start + h.BatchSize
			if end > len(order) {
				end = len(order)
			}
			batch := order[start:end]

			parallel.ForEach(len(batch), threads, func(i int) {
				tape := <-tapes
				defer func() { tapes <- tape }()

				n := batch[i]
				out, _ := tape.Forward(set.inputs[n])
				diff := out[0] - set.targets[n]
				losses[n] = diff * diff
				tape.Backward([]float64{2 * diff})
			})

			for l := range grads {
				for j := range grads[l] {
					grads[l][j] = 0
				}
				for _, tape := range all {
					floats.Add(grads[l], tape.Gradients()[l])
				}
				floats.Scale(1/float64(len(batch)), grads[l])
			}
			for _, tape := range all {
				tape.Reset()
			}
			opt.Step(params, grads)
		}

		metrics := evaluate(net, val, threads)
		logs := Logs{
			Epoch:   epoch,
			Epochs:  h.Epochs,
			Loss:    floats.Sum(losses) / float64(len(losses)),
			ValLoss: metrics.MSE,
			ValMAE:  metrics.MAE,
		}
		history.OnEpochEnd(logs)
		for _, c := range callbacks {
			c.OnEpochEnd(logs)
		}
	}
	return history, nil
}

func identity(n int) []int {
	o := make([]int, n)
	for i := range o {
		o[i] = i
	}
	return o
}
