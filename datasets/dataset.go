// Package datasets implements the dataset helpers shared by the blobcount datasets
package datasets

import "github.com/neurlang/quaternary"

// Dataset maps a sample fingerprint to one bit of its label.
type Dataset map[uint32]bool

func (d *Dataset) Init() {
	*d = make(map[uint32]bool)
}

// MemorizationCost reports the size in bytes of the smallest quaternary filter
// that reproduces the dataset bits. A set whose labels are easy to memorize
// from fingerprints alone yields a small filter.
func MemorizationCost(d Dataset) int {
	if len(d) == 0 {
		return 0
	}
	var filter []byte = quaternary.Make(d)
	return len(filter)
}

// SplitAt returns the ordered index at which a set of length n is cut so the
// first part holds fraction of the samples. The fraction is clamped into [0, 1].
func SplitAt(n int, fraction float64) int {
	if fraction <= 0 || n <= 0 {
		return 0
	}
	if fraction >= 1 {
		return n
	}
	return int(float64(n) * fraction)
}

// Split cuts set in its stored order into a training and a validation part.
// No shuffling is done, and both parts share the backing array of set.
func Split[T any](set []T, fraction float64) (train, validation []T) {
	at := SplitAt(len(set), fraction)
	return set[:at:at], set[at:]
}
