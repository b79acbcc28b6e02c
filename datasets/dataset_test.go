package datasets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitKeepsOrder(t *testing.T) {
	set := make([]int, 1000)
	for i := range set {
		set[i] = i
	}
	train, validation := Split(set, 0.8)
	assert.Len(t, train, 800)
	assert.Len(t, validation, 200)
	assert.Equal(t, 0, train[0])
	assert.Equal(t, 799, train[799])
	assert.Equal(t, 800, validation[0])
	assert.Equal(t, 999, validation[199])
}

func TestSplitAt(t *testing.T) {
	tests := []struct {
		n        int
		fraction float64
		want     int
	}{
		{1000, 0.8, 800},
		{10, 0.8, 8},
		{7, 0.8, 5},
		{0, 0.8, 0},
		{10, 0, 0},
		{10, -1, 0},
		{10, 1, 10},
		{10, 2, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitAt(tt.n, tt.fraction), "n=%d fraction=%v", tt.n, tt.fraction)
	}
}

func TestSplitDoesNotAliasOnAppend(t *testing.T) {
	set := []int{1, 2, 3, 4, 5}
	train, validation := Split(set, 0.6)
	train = append(train, 99)
	assert.Equal(t, []int{4, 5}, validation)
	assert.Equal(t, []int{1, 2, 3, 99}, train)
}

func TestMemorizationCostEmpty(t *testing.T) {
	var d Dataset
	d.Init()
	assert.Equal(t, 0, MemorizationCost(d))
}
