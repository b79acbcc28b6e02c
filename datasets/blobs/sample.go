package blobs

import "github.com/neurlang/blobcount/datasets"
import "github.com/neurlang/blobcount/parallel"

// Sample pairs a grid with the number of circles placed on it.
type Sample struct {
	Grid  Grid
	Label int
}

// Feature returns the n-th row of the grid as a bit mask.
func (s Sample) Feature(n int) uint32 {
	return s.Grid.Feature(n)
}

// Output is the label as an integer output.
func (s Sample) Output() uint16 {
	return uint16(s.Label)
}

// Tensor is the grid as network input.
func (s Sample) Tensor() []float64 {
	return s.Grid.Tensor()
}

// Target is the label as a regression target.
func (s Sample) Target() float64 {
	return float64(s.Label)
}

// Dataslice is an ordered dataset of samples in generation order.
type Dataslice []Sample

func (d Dataslice) Get(n int) Sample {
	return d[n]
}

func (d Dataslice) Len() int {
	return len(d)
}

// Preview returns the samples at indices start to start+count-1, truncated to
// the indices that exist in the dataset.
func (d Dataslice) Preview(start, count int) Dataslice {
	end := start + count
	if end > len(d) {
		end = len(d)
	}
	if start < 0 {
		start = 0
	}
	if count <= 0 || start >= end {
		return Dataslice{}
	}
	return d[start:end:end]
}

// Split cuts the dataset in order into a training and a validation part.
func (d Dataslice) Split(fraction float64) (train, validation Dataslice) {
	return datasets.Split(d, fraction)
}

// Histogram counts the samples per label.
func (d Dataslice) Histogram() (h [MaxCircles + 1]int) {
	for _, s := range d {
		if s.Label >= 0 && s.Label <= MaxCircles {
			h[s.Label]++
		}
	}
	return
}

// Set materializes the Dataslice as fingerprint to lowest label bit.
func (d Dataslice) Set() (set datasets.Dataset) {
	set.Init()
	for i := 0; i < d.Len(); i++ {
		set[d.Get(i).Grid.Fingerprint()] = d.Get(i).Output()&1 != 0
	}
	return
}

// Digest hashes the labels in dataset order.
func (d Dataslice) Digest() [32]byte {
	h := parallel.NewUint16Hasher(d.Len())
	parallel.ForEach(d.Len(), parallel.Threads(), func(i int) {
		h.MustPutUint16(i, d[i].Output())
	})
	return h.Sum()
}
