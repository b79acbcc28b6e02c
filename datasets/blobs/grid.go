package blobs

import "math"

import "github.com/neurlang/blobcount/hash"

// Grid is a square binary occupancy matrix stored row-major with the origin at
// the top-left. A Grid is never modified once it has been returned by this package.
type Grid struct {
	size  int
	cells []byte
}

// Circle is a placement candidate. X is the column and Y is the row of the centre.
type Circle struct {
	X, Y   int
	Radius float64
}

// Covers reports whether cell (r, c) lies within the circle.
func (k Circle) Covers(r, c int) bool {
	dx := float64(c - k.X)
	dy := float64(r - k.Y)
	return math.Sqrt(dx*dx+dy*dy) <= k.Radius
}

// Distance is the Euclidean distance between the centres of k and o.
func (k Circle) Distance(o Circle) float64 {
	dx := float64(k.X - o.X)
	dy := float64(k.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Rasterize returns the size×size grid whose occupied cells are exactly the
// union of the disks of circles.
func Rasterize(size int, circles []Circle) Grid {
	g := emptyGrid(size)
	for _, k := range circles {
		g.paint(k)
	}
	return g
}

// NewGrid copies cells (row-major, non-zero means occupied) into a Grid.
func NewGrid(size int, cells []byte) Grid {
	g := emptyGrid(size)
	for i := range g.cells {
		if i < len(cells) && cells[i] != 0 {
			g.cells[i] = 1
		}
	}
	return g
}

func emptyGrid(size int) Grid {
	if size < 0 {
		size = 0
	}
	return Grid{size: size, cells: make([]byte, size*size)}
}

// paint marks the disk of k; only used while a grid is being generated.
func (g *Grid) paint(k Circle) {
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if k.Covers(r, c) {
				g.cells[r*g.size+c] = 1
			}
		}
	}
}

// Size is the side length of the grid.
func (g Grid) Size() int {
	return g.size
}

// At reports whether cell (r, c) is occupied. Out of range cells are empty.
func (g Grid) At(r, c int) bool {
	if r < 0 || c < 0 || r >= g.size || c >= g.size {
		return false
	}
	return g.cells[r*g.size+c] != 0
}

// Occupied counts the occupied cells.
func (g Grid) Occupied() (n int) {
	for _, v := range g.cells {
		n += int(v)
	}
	return
}

// Cells returns a copy of the row-major cells, 1 for occupied and 0 for empty.
func (g Grid) Cells() []byte {
	return append([]byte(nil), g.cells...)
}

// Rows returns the grid as a matrix of 0/1 values.
func (g Grid) Rows() [][]int {
	rows := make([][]int, g.size)
	for r := range rows {
		rows[r] = make([]int, g.size)
		for c := range rows[r] {
			rows[r][c] = int(g.cells[r*g.size+c])
		}
	}
	return rows
}

// Tensor returns the grid as height × width × 1 network input values.
func (g Grid) Tensor() []float64 {
	out := make([]float64, len(g.cells))
	for i, v := range g.cells {
		out[i] = float64(v)
	}
	return out
}

// Feature returns row n (modulo the size) packed as a bit mask, column 0 in
// bit 0. Rows wider than 32 cells are folded onto the low 32 bits.
func (g Grid) Feature(n int) (o uint32) {
	if g.size == 0 {
		return 0
	}
	r := n % g.size
	if r < 0 {
		r += g.size
	}
	for c := 0; c < g.size; c++ {
		if g.cells[r*g.size+c] != 0 {
			o ^= 1 << uint(c%32)
		}
	}
	return
}

// Fingerprint hashes all rows of the grid into one 32 bit value.
func (g Grid) Fingerprint() uint32 {
	words := make([]uint32, g.size)
	for r := range words {
		words[r] = g.Feature(r)
	}
	return hash.Words(words, uint32(g.size))
}

// Pack stores the cells eight per byte, most significant bit first.
func (g Grid) Pack() []byte {
	out := make([]byte, (len(g.cells)+7)/8)
	for i, v := range g.cells {
		if v != 0 {
			out[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return out
}

// Unpack is the inverse of Pack.
func Unpack(size int, packed []byte) Grid {
	g := emptyGrid(size)
	for i := range g.cells {
		if i/8 < len(packed) && packed[i/8]&(0x80>>uint(i%8)) != 0 {
			g.cells[i] = 1
		}
	}
	return g
}
