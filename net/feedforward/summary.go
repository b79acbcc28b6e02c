package feedforward

import "fmt"
import "strings"

import "github.com/neurlang/blobcount/layer"

// LayerSummary is one row of the model summary.
type LayerSummary struct {
	Name   string      `json:"name"`
	Shape  layer.Shape `json:"shape"`
	Params int         `json:"params"`
}

// Summary lists every layer with its output shape and weight count.
func (f FeedforwardNetwork) Summary() (o []LayerSummary) {
	for _, c := range f.combiners {
		o = append(o, LayerSummary{Name: c.Name(), Shape: c.Shape(), Params: len(c.Params())})
	}
	return
}

// String formats the summary as a text table.
func (f FeedforwardNetwork) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-14s %10s\n", "layer", "output", "params")
	fmt.Fprintf(&b, "%-12s %-14s %10s\n", "input", f.input, "0")
	for _, s := range f.Summary() {
		fmt.Fprintf(&b, "%-12s %-14s %10d\n", s.Name, s.Shape, s.Params)
	}
	fmt.Fprintf(&b, "total params: %d\n", f.Len())
	return b.String()
}
