package trainer

import "math"
import "sort"

import "github.com/neurlang/blobcount/net/feedforward"

// Worst returns the indices of the n examples with the largest absolute error,
// largest first. n <= 0 yields nil.
func Worst[E Example](net *feedforward.FeedforwardNetwork, set []E, n, threads int) []int {
	p, err := prepare(net, set)
	if err != nil || len(set) == 0 || n <= 0 {
		return nil
	}
	preds := predictAll(net, p.inputs, threads)
	order := identity(len(set))
	sort.SliceStable(order, func(i, j int) bool {
		return math.Abs(preds[order[i]]-p.targets[order[i]]) > math.Abs(preds[order[j]]-p.targets[order[j]])
	})
	if n < len(order) {
		order = order[:n]
	}
	return order
}
