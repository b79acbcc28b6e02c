package blobs

import "github.com/neurlang/blobcount/parallel"

// GridSize is the side length of the grids used by the demo.
const GridSize = 24

// DatasetSize is the number of samples generated per dataset by default.
const DatasetSize = 1000

// MaxCircles is the largest number of circles a sample may target.
const MaxCircles = 8

// MinRadius and RadiusSpan bound the radius draw to [MinRadius, MinRadius+RadiusSpan).
const MinRadius = 1.0
const RadiusSpan = 3.0

// Gap is the minimum free space kept between circles when overlap is disallowed.
const Gap = 1.5

// Attempts is the number of centre draws tried for one circle before giving up.
const Attempts = 100

// Generator places circles on a grid by bounded rejection sampling.
type Generator struct {
	GridSize     int
	AllowOverlap bool

	// Source overrides the random draws. Nil uses the unseeded global generator.
	Source Source
}

// NewGenerator creates a generator for size×size grids.
func NewGenerator(size int, allowOverlap bool) *Generator {
	return &Generator{GridSize: size, AllowOverlap: allowOverlap}
}

// GenerateSample produces one labelled sample of a size×size grid.
func GenerateSample(size int, allowOverlap bool) Sample {
	s, _ := NewGenerator(size, allowOverlap).Generate()
	return s
}

// GenerateDataset calls the generator count times and returns the samples in call order.
func GenerateDataset(count int, allowOverlap bool) Dataslice {
	return NewGenerator(GridSize, allowOverlap).Dataset(count)
}

func (g *Generator) source() Source {
	if g.Source == nil {
		return globalSource{}
	}
	return g.Source
}

// Generate draws a target count in [0, MaxCircles] and tries to place that many
// circles. Circles that find no valid position within Attempts draws are
// skipped, so the label may be lower than the target. The committed circles
// are returned alongside the sample.
func (g *Generator) Generate() (Sample, []Circle) {
	grid := emptyGrid(g.GridSize)
	if g.GridSize <= 0 {
		return Sample{Grid: grid}, nil
	}
	src := g.source()

	target := src.IntN(MaxCircles + 1)
	placed := make([]Circle, 0, target)

	for i := 0; i < target; i++ {
		radius := src.Float64()*RadiusSpan + MinRadius
		k, ok := g.place(src, radius, placed)
		if !ok {
			continue
		}
		placed = append(placed, k)
		grid.paint(k)
	}
	return Sample{Grid: grid, Label: len(placed)}, placed
}

// place draws up to Attempts centres for a circle of the given radius and
// returns the first one that keeps its distance from every placed circle.
func (g *Generator) place(src Source, radius float64, placed []Circle) (Circle, bool) {
	for attempt := 0; attempt < Attempts; attempt++ {
		k := Circle{X: src.IntN(g.GridSize), Y: src.IntN(g.GridSize), Radius: radius}
		if g.AllowOverlap || Separated(k, placed) {
			return k, true
		}
	}
	return Circle{}, false
}

// Separated reports whether the centre of k is further than the sum of radii
// plus Gap from the centre of every circle in placed.
func Separated(k Circle, placed []Circle) bool {
	for _, p := range placed {
		if k.Distance(p) <= k.Radius+p.Radius+Gap {
			return false
		}
	}
	return true
}

// Dataset generates count samples in call order. With the global source the
// samples are generated concurrently; a custom Source is drawn sequentially.
func (g *Generator) Dataset(count int) Dataslice {
	if count < 0 {
		count = 0
	}
	out := make(Dataslice, count)
	limit := parallel.Threads()
	if g.Source != nil {
		limit = 1
	}
	parallel.ForEach(count, limit, func(i int) {
		out[i], _ = g.Generate()
	})
	return out
}
