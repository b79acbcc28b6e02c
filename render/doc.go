// Package render draws blob grids as zoomed black and white images and plots
// the training loss curves as PNG (gonum/plot) or interactive HTML (go-echarts).
package render
