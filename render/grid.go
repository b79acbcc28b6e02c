package render

import "image"
import "image/color"
import "image/png"
import "io"

import "golang.org/x/image/draw"

import "github.com/neurlang/blobcount/datasets/blobs"

// Zoom is the default number of pixels per grid cell.
const Zoom = 10

var (
	occupied = color.Gray{Y: 0}
	empty    = color.Gray{Y: 255}
)

// cells draws one pixel per grid cell, occupied black.
func cells(g blobs.Grid) *image.Gray {
	n := g.Size()
	img := image.NewGray(image.Rect(0, 0, n, n))
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if g.At(r, c) {
				img.SetGray(c, r, occupied)
			} else {
				img.SetGray(c, r, empty)
			}
		}
	}
	return img
}

// Grid renders g with each cell as a zoom×zoom block. Zoom below 1 is treated as 1.
func Grid(g blobs.Grid, zoom int) *image.Gray {
	if zoom < 1 {
		zoom = 1
	}
	src := cells(g)
	dst := image.NewGray(image.Rect(0, 0, g.Size()*zoom, g.Size()*zoom))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Strip renders the grids side by side separated by a white gap of one cell.
func Strip(grids []blobs.Grid, zoom int) *image.Gray {
	if zoom < 1 {
		zoom = 1
	}
	var width, height int
	for i, g := range grids {
		if i > 0 {
			width += zoom
		}
		width += g.Size() * zoom
		if h := g.Size() * zoom; h > height {
			height = h
		}
	}
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(empty), image.Point{}, draw.Src)
	var x int
	for _, g := range grids {
		src := cells(g)
		r := image.Rect(x, 0, x+g.Size()*zoom, g.Size()*zoom)
		draw.NearestNeighbor.Scale(dst, r, src, src.Bounds(), draw.Src, nil)
		x = r.Max.X + zoom
	}
	return dst
}

// Samples is Strip over the grids of a dataset slice.
func Samples(d blobs.Dataslice, zoom int) *image.Gray {
	grids := make([]blobs.Grid, d.Len())
	for i := range grids {
		grids[i] = d.Get(i).Grid
	}
	return Strip(grids, zoom)
}

// PNG encodes img to w.
func PNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
