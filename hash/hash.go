// Package hash implements the xor shift mixing used to fingerprint blob grids
package hash

// Mix mixes n with salt s through xor shifts with prime shift amounts.
// For a fixed salt it is a bijection on uint32.
func Mix(n uint32, s uint32) uint32 {
	var m = n - s
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19
	return m + s
}

// Words folds a sequence of words into one 32 bit fingerprint. Every word is
// salted by its position, so permuted rows fingerprint differently.
func Words(words []uint32, salt uint32) (o uint32) {
	o = Mix(uint32(len(words)), salt)
	for i, w := range words {
		o = Mix(o^w, salt+uint32(i)+1)
	}
	return
}
