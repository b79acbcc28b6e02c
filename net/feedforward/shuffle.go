package feedforward

import rand "math/rand/v2"

// Shuffle returns a random permutation of 0..n-1, reversed when reverse is set.
func Shuffle(n int, reverse bool) (o []int) {
	o = make([]int, n)
	for i := range o {
		o[i] = i
	}
	rand.Shuffle(len(o), func(i, j int) { o[i], o[j] = o[j], o[i] })
	if reverse {
		for i := 0; 2*i < len(o); i++ {
			o[i], o[len(o)-i-1] = o[len(o)-i-1], o[i]
		}
	}
	return o
}
